package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"user-admin-backend/db/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// UsersReportData holds all data for the users report template
type UsersReportData struct {
	PrintDate     string
	TotalUsers    int
	ActiveUsers   int
	InactiveUsers int
	Users         []models.User
}

// GenerateUsersReportPDF renders the user listing as a PDF report under
// ./public/files and returns its public path. Rendering goes through a
// headless Chrome print of an HTML template.
func GenerateUsersReportPDF(users []models.User, taskName string) (string, error) {
	data := prepareUsersReportData(users)

	htmlContent, err := renderUsersReportHTML(data)
	if err != nil {
		return "", fmt.Errorf("failed to render users report HTML: %v", err)
	}

	var pdfBuffer bytes.Buffer
	if err := printUsersReportPDF(htmlContent, &pdfBuffer); err != nil {
		return "", fmt.Errorf("failed to generate PDF: %v", err)
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s_%s.pdf", taskName, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.WriteFile(filepath.Join(exportDir, fileName), pdfBuffer.Bytes(), 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("/public/files/%s", fileName), nil
}

func prepareUsersReportData(users []models.User) UsersReportData {
	active := 0
	for _, user := range users {
		if user.IsActive {
			active++
		}
	}
	return UsersReportData{
		PrintDate:     time.Now().Format("02 January 2006 15:04"),
		TotalUsers:    len(users),
		ActiveUsers:   active,
		InactiveUsers: len(users) - active,
		Users:         users,
	}
}

func renderUsersReportHTML(data UsersReportData) (string, error) {
	funcMap := template.FuncMap{
		"add1": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("users-report.html").Funcs(funcMap).ParseFiles("templates/users-report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse users report template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute users report template: %v", err)
	}

	return buf.String(), nil
}

// printUsersReportPDF prints the HTML content to A4 portrait PDF via
// headless Chrome. The HTML is served from an ephemeral local listener so
// Chrome can navigate to it like a normal page.
func printUsersReportPDF(htmlContent string, w io.Writer) error {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/html")
		_, _ = rw.Write([]byte(htmlContent))
	})

	server := &http.Server{Handler: mux}
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return err
	}
	defer listener.Close()

	go server.Serve(listener)
	defer server.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // A4 Portrait width
				WithPaperHeight(11.69). // A4 Portrait height
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithLandscape(false).
				WithPreferCSSPageSize(false).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return err
	}

	_, err = w.Write(buf)
	return err
}
