package ml

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
)

func TestParseApplicantForm(t *testing.T) {
	values := url.Values{
		FieldSex:             {"female"},
		FieldJob:             {"1"},
		FieldHousing:         {"rent"},
		FieldSavingAccounts:  {"moderate"},
		FieldCheckingAccount: {"no_checking"},
		FieldCreditAmount:    {" 2500 "},
		FieldDuration:        {"36"},
		FieldPurpose:         {"business"},
	}

	input, err := ParseApplicantForm(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ApplicantInput{
		Sex:             SexFemale,
		Job:             1,
		Housing:         HousingRent,
		SavingAccounts:  SavingsModerate,
		CheckingAccount: CheckingNone,
		CreditAmount:    2500,
		Duration:        36,
		Purpose:         PurposeBusiness,
	}
	if input != want {
		t.Fatalf("expected %+v, got %+v", want, input)
	}
}

func TestParseApplicantFormNumericErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing amount", FieldCreditAmount, ""},
		{"text duration", FieldDuration, "twelve"},
		{"fractional job", FieldJob, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{
				FieldJob:          {"0"},
				FieldCreditAmount: {"1000"},
				FieldDuration:     {"12"},
			}
			values.Set(tt.field, tt.value)

			_, err := ParseApplicantForm(values)
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("expected *EncodingError, got %v", err)
			}
			if encErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, encErr.Field)
			}
		})
	}
}

func TestDefaultApplicantInputEncodes(t *testing.T) {
	input := DefaultApplicantInput()
	if input.CreditAmount != DefaultCreditAmount || input.Duration != DefaultDuration {
		t.Fatalf("unexpected defaults: %+v", input)
	}
	if _, err := EncodeApplicant(input); err != nil {
		t.Fatalf("defaults should encode: %v", err)
	}
}

func TestJobOptions(t *testing.T) {
	options := JobOptions()
	if len(options) != 4 {
		t.Fatalf("expected 4 job options, got %d", len(options))
	}
	if options[0].Value != "0" || options[3].Value != "3" {
		t.Fatalf("unexpected job options: %+v", options)
	}
}

func TestApplicantRequestInput(t *testing.T) {
	body := `{"sex":"male","job":0,"housing":"own","saving_accounts":"little","checking_account":"little","credit_amount":0,"duration":12,"purpose":"repairs"}`
	var req ApplicantRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	input, err := req.Input()
	if err != nil {
		t.Fatalf("explicit zero values should be accepted: %v", err)
	}
	if input.Job != 0 || input.CreditAmount != 0 || input.Purpose != PurposeRepairs {
		t.Fatalf("unexpected input: %+v", input)
	}
}

func TestApplicantRequestMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty object", `{}`, FieldSex},
		{"job and amount omitted", `{"sex":"male","housing":"own","saving_accounts":"little","checking_account":"little","duration":12,"purpose":"repairs"}`, FieldJob},
		{"amount omitted", `{"sex":"male","job":1,"housing":"own","saving_accounts":"little","checking_account":"little","duration":12,"purpose":"repairs"}`, FieldCreditAmount},
		{"purpose null", `{"sex":"male","job":1,"housing":"own","saving_accounts":"little","checking_account":"little","credit_amount":100,"duration":12,"purpose":null}`, FieldPurpose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ApplicantRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("decode: %v", err)
			}
			_, err := req.Input()
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("expected *EncodingError, got %v", err)
			}
			if encErr.Field != tt.field || encErr.Reason != "missing value" {
				t.Fatalf("expected missing %q, got %+v", tt.field, encErr)
			}
		})
	}
}
