package web

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veldt-labs/cropsight/internal/config"
)

var testCSV = strings.Join([]string{
	"Country,Year,Temperature Anomaly,Average CO2",
	"Kenya,2001,1.2,395.5",
	"Kenya,2002,1.4,398.0",
	"Brazil,2001,0.9,392.1",
	"Brazil,2002,1.1,396.7",
}, "\n")

func testServer() *Server {
	return New(&config.Config{
		MaxUploadMB:   4,
		NumericPolicy: "reject",
		DefaultChart:  "scatter",
	})
}

// uploadCSV posts a dataset and returns the session cookie.
func uploadCSV(t *testing.T, s *Server, body string) *http.Cookie {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("dataset", "climate.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := io.WriteString(fw, body); err != nil {
		t.Fatalf("write form: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d, body: %s", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func getDashboard(t *testing.T, s *Server, cookie *http.Cookie, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/dashboard"+query, nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func TestIdlePage(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Please upload a CSV") {
		t.Fatalf("idle page missing prompt: %s", rr.Body.String())
	}
}

func TestDashboardWithoutUploadRedirects(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to idle page", rr.Code)
	}
}

func TestUploadAndDashboard(t *testing.T) {
	s := testServer()
	cookie := uploadCSV(t, s, testCSV)

	rr := getDashboard(t, s, cookie, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	// mean temp (1.2+1.4+0.9+1.1)/4 = 1.15, mean co2 = 395.575
	if !strings.Contains(body, "1.15") || !strings.Contains(body, "395.5") {
		t.Fatalf("dashboard missing means: %s", body)
	}
	if !strings.Contains(body, "Rice, Oats, or Barley") {
		t.Fatalf("dashboard missing crop suggestion: %s", body)
	}
	if !strings.Contains(body, "choropleth") || !strings.Contains(body, "yaxis2") {
		t.Fatal("dashboard missing embedded chart specs")
	}
}

func TestDashboardFilters(t *testing.T) {
	s := testServer()
	cookie := uploadCSV(t, s, testCSV)

	rr := getDashboard(t, s, cookie, "?country=Kenya&year=2002")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	// single row: temp 1.4, co2 398.0 -> Rice/Oats/Barley
	if !strings.Contains(body, "1.40") || !strings.Contains(body, "398.00") {
		t.Fatalf("filtered means wrong: %s", body)
	}
}

func TestDashboardNoDataState(t *testing.T) {
	s := testServer()
	cookie := uploadCSV(t, s, testCSV)

	rr := getDashboard(t, s, cookie, "?country=Kenya&year=1999")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want the page to render with a warning", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "No data available for the selected country and year") {
		t.Fatalf("missing no-data warning: %s", body)
	}
	// the other sections still render
	if !strings.Contains(body, "choropleth") {
		t.Fatal("map section missing in no-data state")
	}
}

func TestDashboardUnknownChartKind(t *testing.T) {
	s := testServer()
	cookie := uploadCSV(t, s, testCSV)

	rr := getDashboard(t, s, cookie, "?chart=treemap")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown chart kind", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unknown chart kind") {
		t.Fatalf("error body = %s", rr.Body.String())
	}
}

func TestUploadMissingColumns(t *testing.T) {
	s := testServer()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("dataset", "bad.csv")
	io.WriteString(fw, "Country,Crop Yield\nKenya,3.1\n")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := rr.Body.String()
	for _, col := range []string{"year", "temperature_anomaly", "average_co2"} {
		if !strings.Contains(body, col) {
			t.Errorf("error page does not name %q: %s", col, body)
		}
	}
}

func TestReset(t *testing.T) {
	s := testServer()
	cookie := uploadCSV(t, s, testCSV)

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("reset status = %d", rr.Code)
	}

	rr = getDashboard(t, s, cookie, "")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("dashboard after reset = %d, want redirect", rr.Code)
	}
}
