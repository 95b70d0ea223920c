package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestValidatePaginationParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  PaginationParams
		wantErr bool
	}{
		{"defaults", PaginationParams{Page: 1, PageSize: 10}, false},
		{"max page size", PaginationParams{Page: 1, PageSize: 100}, false},
		{"zero page", PaginationParams{Page: 0, PageSize: 10}, true},
		{"negative page", PaginationParams{Page: -1, PageSize: 10}, true},
		{"zero page size", PaginationParams{Page: 1, PageSize: 0}, true},
		{"oversized page size", PaginationParams{Page: 1, PageSize: 101}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePaginationParams(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePaginationParams(%+v) error = %v, wantErr %v", tt.params, err, tt.wantErr)
			}
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	t.Parallel()

	app := fiber.New()

	var got PaginationParams
	app.Get("/users", func(c *fiber.Ctx) error {
		got = ParsePaginationParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/users?page=3&page_size=25&sort_by=email&sort_dir=desc&status=active&search=jane", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if got.Page != 3 || got.PageSize != 25 {
		t.Fatalf("expected page 3 size 25, got %d / %d", got.Page, got.PageSize)
	}
	if got.SortBy != "email" || got.SortDir != "desc" {
		t.Fatalf("expected sort email/desc, got %s/%s", got.SortBy, got.SortDir)
	}

	// Reserved keys never leak into the filter map.
	for _, reserved := range []string{"page", "page_size", "sort_by", "sort_dir"} {
		if _, ok := got.Filters[reserved]; ok {
			t.Errorf("reserved key %q leaked into filters", reserved)
		}
	}
	if got.Filters["status"] != "active" || got.Filters["search"] != "jane" {
		t.Fatalf("expected filters to carry status and search, got %v", got.Filters)
	}
}

func TestParsePaginationParamsDefaults(t *testing.T) {
	t.Parallel()

	app := fiber.New()

	var got PaginationParams
	app.Get("/users", func(c *fiber.Ctx) error {
		got = ParsePaginationParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if got.Page != 1 || got.PageSize != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", got.Page, got.PageSize)
	}
	if got.SortDir != "asc" {
		t.Fatalf("expected default sort dir asc, got %q", got.SortDir)
	}
	if len(got.Filters) != 0 {
		t.Fatalf("expected no filters, got %v", got.Filters)
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	t.Parallel()

	app := fiber.New()

	var resp PaginatedResponse
	app.Get("/users", func(c *fiber.Ctx) error {
		params := ParsePaginationParams(c)
		resp = NewPaginatedResponse(c, []string{"a", "b"}, 45, params)
		return c.SendStatus(fiber.StatusOK)
	})

	r, err := app.Test(httptest.NewRequest("GET", "/users?page=2&page_size=10", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer r.Body.Close()

	meta := resp.Pagination
	if meta.CurrentPage != 2 || meta.TotalItems != 45 || meta.TotalPages != 5 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.NextPage == nil || meta.PrevPage == nil {
		t.Fatalf("expected both next and prev links on a middle page, got %+v", meta)
	}
}

func TestNewPaginatedResponseBoundaries(t *testing.T) {
	t.Parallel()

	app := fiber.New()

	var first, last PaginatedResponse
	app.Get("/first", func(c *fiber.Ctx) error {
		first = NewPaginatedResponse(c, nil, 30, PaginationParams{Page: 1, PageSize: 10})
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/last", func(c *fiber.Ctx) error {
		last = NewPaginatedResponse(c, nil, 30, PaginationParams{Page: 3, PageSize: 10})
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/first", "/last"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
	}

	if first.Pagination.PrevPage != nil {
		t.Fatal("first page should have no prev link")
	}
	if first.Pagination.NextPage == nil {
		t.Fatal("first page should have a next link")
	}
	if last.Pagination.NextPage != nil {
		t.Fatal("last page should have no next link")
	}
	if last.Pagination.PrevPage == nil {
		t.Fatal("last page should have a prev link")
	}
}
