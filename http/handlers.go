package http

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"creditrisk/ml"
	"creditrisk/monitoring"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the form and prediction routes against one loaded assessor.
type Handler struct {
	assessor *ml.Assessor
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	pages    *template.Template
}

// NewHandler parses the embedded page templates. Nil metrics or logger fall
// back to a private registry and a no-op logger.
func NewHandler(assessor *ml.Assessor, metrics *monitoring.Metrics, logger *zap.Logger) (*Handler, error) {
	if assessor == nil {
		return nil, errors.New("assessor is required")
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pages, err := template.New("pages").Funcs(template.FuncMap{
		"title": titleCase,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{assessor: assessor, metrics: metrics, logger: logger, pages: pages}, nil
}

// Register mounts the form, API, health and metrics routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /predict", h.handlePredictForm)
	mux.HandleFunc("POST /api/predict", h.handlePredictJSON)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.Handle("GET /metrics", h.metrics.Handler())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, newFormPage(ml.DefaultApplicantInput()))
}

func (h *Handler) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.metrics.ObserveRejection(monitoring.RejectRequest)
		page := newFormPage(ml.DefaultApplicantInput())
		page.Error = "invalid form submission"
		h.renderPage(w, http.StatusBadRequest, page)
		return
	}

	input, err := ml.ParseApplicantForm(r.PostForm)
	if err != nil {
		status := h.reject(r, err)
		page := submittedFormPage(r.PostForm)
		page.Error = err.Error()
		h.renderPage(w, status, page)
		return
	}

	page := newFormPage(input)
	page.Details = applicantDetails(input)

	assessment, err := h.assessor.Evaluate(input)
	if err != nil {
		status := h.reject(r, err)
		page.Error = err.Error()
		h.renderPage(w, status, page)
		return
	}

	h.accept(r, assessment)
	page.Result = &resultView{Text: assessment.Label.String(), Good: assessment.Label == ml.GoodRisk}
	h.renderPage(w, http.StatusOK, page)
}

type predictResponse struct {
	Label    int       `json:"label"`
	Risk     string    `json:"risk"`
	Features []float64 `json:"features"`
}

func (h *Handler) handlePredictJSON(w http.ResponseWriter, r *http.Request) {
	var req ml.ApplicantRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.metrics.ObserveRejection(monitoring.RejectRequest)
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// One object per request.
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		h.metrics.ObserveRejection(monitoring.RejectRequest)
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := req.Input()
	if err != nil {
		status := h.reject(r, err)
		respondError(w, status, err.Error())
		return
	}

	assessment, err := h.assessor.Evaluate(input)
	if err != nil {
		status := h.reject(r, err)
		respondError(w, status, err.Error())
		return
	}

	h.accept(r, assessment)
	respondJSON(w, http.StatusOK, predictResponse{
		Label:    int(assessment.Label),
		Risk:     assessment.Label.String(),
		Features: assessment.Features,
	})
}

func (h *Handler) accept(r *http.Request, assessment ml.Assessment) {
	h.metrics.ObservePrediction(assessment.Label.String())
	h.logger.Info("applicant classified",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("risk", assessment.Label.String()))
}

// reject records a failed evaluation and maps it to a status code.
func (h *Handler) reject(r *http.Request, err error) int {
	status, kind := classifyError(err)
	h.metrics.ObserveRejection(kind)

	fields := []zap.Field{
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("kind", kind),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("prediction failed", fields...)
	} else {
		h.logger.Warn("prediction rejected", fields...)
	}
	return status
}

func classifyError(err error) (int, string) {
	var encErr *ml.EncodingError
	var valErr *ml.ValidationError
	switch {
	case errors.As(err, &encErr):
		return http.StatusBadRequest, monitoring.RejectEncoding
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity, monitoring.RejectValidation
	default:
		return http.StatusInternalServerError, monitoring.RejectClassifier
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.ExecuteTemplate(w, "form.html", page); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type selectField struct {
	Name     string
	Label    string
	Options  []ml.Option
	Selected string
}

type detailRow struct {
	Name  string
	Value string
}

type resultView struct {
	Text string
	Good bool
}

type formPage struct {
	Selects      []selectField
	Purpose      selectField
	CreditAmount string
	Duration     string
	MinDuration  int
	MaxDuration  int
	Details      []detailRow
	Result       *resultView
	Error        string
}

func newFormPage(input ml.ApplicantInput) formPage {
	values := url.Values{}
	values.Set(ml.FieldSex, string(input.Sex))
	values.Set(ml.FieldJob, strconv.Itoa(input.Job))
	values.Set(ml.FieldHousing, string(input.Housing))
	values.Set(ml.FieldSavingAccounts, string(input.SavingAccounts))
	values.Set(ml.FieldCheckingAccount, string(input.CheckingAccount))
	values.Set(ml.FieldCreditAmount, strconv.Itoa(input.CreditAmount))
	values.Set(ml.FieldDuration, strconv.Itoa(input.Duration))
	values.Set(ml.FieldPurpose, string(input.Purpose))
	return submittedFormPage(values)
}

// submittedFormPage keeps the user's raw selections, even ones that failed
// to parse, so a rejected submission can be corrected in place.
func submittedFormPage(values url.Values) formPage {
	return formPage{
		Selects: []selectField{
			{Name: ml.FieldSex, Label: "Sex", Options: ml.SexOptions(), Selected: values.Get(ml.FieldSex)},
			{Name: ml.FieldJob, Label: "Job Type", Options: ml.JobOptions(), Selected: values.Get(ml.FieldJob)},
			{Name: ml.FieldHousing, Label: "Housing", Options: ml.HousingOptions(), Selected: values.Get(ml.FieldHousing)},
			{Name: ml.FieldSavingAccounts, Label: "Saving Accounts", Options: ml.SavingAccountsOptions(), Selected: values.Get(ml.FieldSavingAccounts)},
			{Name: ml.FieldCheckingAccount, Label: "Checking Account", Options: ml.CheckingAccountOptions(), Selected: values.Get(ml.FieldCheckingAccount)},
		},
		Purpose:      selectField{Name: ml.FieldPurpose, Label: "Purpose", Options: ml.PurposeOptions(), Selected: values.Get(ml.FieldPurpose)},
		CreditAmount: values.Get(ml.FieldCreditAmount),
		Duration:     values.Get(ml.FieldDuration),
		MinDuration:  ml.MinDuration,
		MaxDuration:  ml.MaxDuration,
	}
}

// applicantDetails echoes the submission in training column order.
func applicantDetails(input ml.ApplicantInput) []detailRow {
	values := []string{
		string(input.Sex),
		strconv.Itoa(input.Job),
		string(input.Housing),
		string(input.SavingAccounts),
		string(input.CheckingAccount),
		strconv.Itoa(input.CreditAmount),
		strconv.Itoa(input.Duration),
		string(input.Purpose),
	}
	names := ml.FeatureNames()
	rows := make([]detailRow, len(names))
	for i, name := range names {
		rows[i] = detailRow{Name: name, Value: values[i]}
	}
	return rows
}

func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}
