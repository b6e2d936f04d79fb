package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/homestock/pkg/validator"
)

type sampleStruct struct {
	Name     string `validate:"required,min=1,max=10"`
	Location string `validate:"omitempty,oneof=inventory grocery archived"`
	URL      string `validate:"omitempty,url"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Name: "milk", Location: "grocery"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "This field is required" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_oneof(t *testing.T) {
	s := sampleStruct{Name: "milk", Location: "pantry"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Location"] != "Must be one of: inventory grocery archived" {
		t.Errorf("unexpected Location message: %q", m["Location"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleStruct{Name: "12345678901"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "Maximum length is 10" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_url(t *testing.T) {
	s := sampleStruct{Name: "milk", URL: "not a url"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["URL"] != "Must be a valid URL" {
		t.Errorf("unexpected URL message: %q", m["URL"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type createItemReq struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Location string `json:"location" validate:"omitempty,oneof=inventory grocery archived"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"name":"Whole Milk","location":"grocery"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[createItemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name != "Whole Milk" {
		t.Errorf("unexpected Name: %q", req.Name)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[createItemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"location":"grocery"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[createItemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing name")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_badLocation(t *testing.T) {
	body := `{"name":"Whole Milk","location":"pantry"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[createItemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for invalid location")
	}
	if !strings.Contains(w.Body.String(), "Must be one of") {
		t.Errorf("expected oneof error in body, got: %s", w.Body.String())
	}
}
