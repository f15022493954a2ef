package ml

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Sex is the applicant's sex code.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Housing is the applicant's housing arrangement.
type Housing string

const (
	HousingOwn  Housing = "own"
	HousingFree Housing = "free"
	HousingRent Housing = "rent"
)

// SavingAccounts is the saving account balance band.
type SavingAccounts string

const (
	SavingsLittle    SavingAccounts = "little"
	SavingsModerate  SavingAccounts = "moderate"
	SavingsQuiteRich SavingAccounts = "quite_rich"
	SavingsRich      SavingAccounts = "rich"
)

// CheckingAccount is the checking account balance band.
type CheckingAccount string

const (
	CheckingLittle   CheckingAccount = "little"
	CheckingModerate CheckingAccount = "moderate"
	CheckingRich     CheckingAccount = "rich"
	CheckingNone     CheckingAccount = "no_checking"
)

// Purpose is what the credit is for.
type Purpose string

const (
	PurposeRadioTV            Purpose = "radio_tv"
	PurposeEducation          Purpose = "education"
	PurposeFurnitureEquipment Purpose = "furniture_equipment"
	PurposeNewCar             Purpose = "new_car"
	PurposeUsedCar            Purpose = "used_car"
	PurposeBusiness           Purpose = "business"
	PurposeDomesticAppliances Purpose = "domestic_appliances"
	PurposeRepairs            Purpose = "repairs"
	PurposeVacationOthers     Purpose = "vacation_others"
)

// Domain limits of the pass-through numeric fields.
const (
	MinJob      = 0
	MaxJob      = 3
	MinDuration = 4
	MaxDuration = 72

	DefaultCreditAmount = 1000
	DefaultDuration     = 12
)

// Form field names shared by the HTML form and ParseApplicantForm.
const (
	FieldSex             = "sex"
	FieldJob             = "job"
	FieldHousing         = "housing"
	FieldSavingAccounts  = "saving_accounts"
	FieldCheckingAccount = "checking_account"
	FieldCreditAmount    = "credit_amount"
	FieldDuration        = "duration"
	FieldPurpose         = "purpose"
)

// ApplicantInput is one form submission. It is built per request and never stored.
type ApplicantInput struct {
	Sex             Sex             `json:"sex"`
	Job             int             `json:"job"`
	Housing         Housing         `json:"housing"`
	SavingAccounts  SavingAccounts  `json:"saving_accounts"`
	CheckingAccount CheckingAccount `json:"checking_account"`
	CreditAmount    int             `json:"credit_amount"`
	Duration        int             `json:"duration"`
	Purpose         Purpose         `json:"purpose"`
}

// DefaultApplicantInput returns the values the form shows before any submission.
func DefaultApplicantInput() ApplicantInput {
	return ApplicantInput{
		Sex:             SexMale,
		Job:             MinJob,
		Housing:         HousingOwn,
		SavingAccounts:  SavingsLittle,
		CheckingAccount: CheckingLittle,
		CreditAmount:    DefaultCreditAmount,
		Duration:        DefaultDuration,
		Purpose:         PurposeRadioTV,
	}
}

// Option is one selectable value of a categorical field.
type Option struct {
	Value string
	Label string
}

// SexOptions lists the sex codes in form order.
func SexOptions() []Option {
	return []Option{
		{Value: string(SexMale), Label: "male"},
		{Value: string(SexFemale), Label: "female"},
	}
}

// JobOptions lists job types MinJob..MaxJob.
func JobOptions() []Option {
	options := make([]Option, 0, MaxJob-MinJob+1)
	for job := MinJob; job <= MaxJob; job++ {
		value := strconv.Itoa(job)
		options = append(options, Option{Value: value, Label: value})
	}
	return options
}

// HousingOptions lists the housing codes in form order.
func HousingOptions() []Option {
	return []Option{
		{Value: string(HousingOwn), Label: "own"},
		{Value: string(HousingFree), Label: "free"},
		{Value: string(HousingRent), Label: "rent"},
	}
}

// SavingAccountsOptions lists the saving account bands.
func SavingAccountsOptions() []Option {
	return []Option{
		{Value: string(SavingsLittle), Label: "little"},
		{Value: string(SavingsModerate), Label: "moderate"},
		{Value: string(SavingsQuiteRich), Label: "quite rich"},
		{Value: string(SavingsRich), Label: "rich"},
	}
}

// CheckingAccountOptions lists the checking account bands.
func CheckingAccountOptions() []Option {
	return []Option{
		{Value: string(CheckingLittle), Label: "little"},
		{Value: string(CheckingModerate), Label: "moderate"},
		{Value: string(CheckingRich), Label: "rich"},
		{Value: string(CheckingNone), Label: "no checking"},
	}
}

// PurposeOptions lists the credit purposes.
func PurposeOptions() []Option {
	return []Option{
		{Value: string(PurposeRadioTV), Label: "radio/TV"},
		{Value: string(PurposeEducation), Label: "education"},
		{Value: string(PurposeFurnitureEquipment), Label: "furniture/equipment"},
		{Value: string(PurposeNewCar), Label: "new car"},
		{Value: string(PurposeUsedCar), Label: "used car"},
		{Value: string(PurposeBusiness), Label: "business"},
		{Value: string(PurposeDomesticAppliances), Label: "domestic appliances"},
		{Value: string(PurposeRepairs), Label: "repairs"},
		{Value: string(PurposeVacationOthers), Label: "vacation/others"},
	}
}

// ParseApplicantForm reads a submitted form. Categorical values are kept as
// given and checked later by EncodeApplicant; numeric fields must parse here.
func ParseApplicantForm(values url.Values) (ApplicantInput, error) {
	job, err := formInt(values, FieldJob)
	if err != nil {
		return ApplicantInput{}, err
	}
	amount, err := formInt(values, FieldCreditAmount)
	if err != nil {
		return ApplicantInput{}, err
	}
	duration, err := formInt(values, FieldDuration)
	if err != nil {
		return ApplicantInput{}, err
	}

	return ApplicantInput{
		Sex:             Sex(values.Get(FieldSex)),
		Job:             job,
		Housing:         Housing(values.Get(FieldHousing)),
		SavingAccounts:  SavingAccounts(values.Get(FieldSavingAccounts)),
		CheckingAccount: CheckingAccount(values.Get(FieldCheckingAccount)),
		CreditAmount:    amount,
		Duration:        duration,
		Purpose:         Purpose(values.Get(FieldPurpose)),
	}, nil
}

func formInt(values url.Values, field string) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, &EncodingError{Field: field, Value: raw, Reason: "missing value"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &EncodingError{Field: field, Value: raw, Reason: "not an integer"}
	}
	return n, nil
}

// ApplicantRequest is the JSON body of an API prediction. Every field is
// required; pointers tell an omitted field apart from a zero value.
type ApplicantRequest struct {
	Sex             *Sex             `json:"sex"`
	Job             *int             `json:"job"`
	Housing         *Housing         `json:"housing"`
	SavingAccounts  *SavingAccounts  `json:"saving_accounts"`
	CheckingAccount *CheckingAccount `json:"checking_account"`
	CreditAmount    *int             `json:"credit_amount"`
	Duration        *int             `json:"duration"`
	Purpose         *Purpose         `json:"purpose"`
}

// Input returns the applicant, or an *EncodingError naming the first
// omitted field in form order.
func (r ApplicantRequest) Input() (ApplicantInput, error) {
	missing := []struct {
		field string
		unset bool
	}{
		{FieldSex, r.Sex == nil},
		{FieldJob, r.Job == nil},
		{FieldHousing, r.Housing == nil},
		{FieldSavingAccounts, r.SavingAccounts == nil},
		{FieldCheckingAccount, r.CheckingAccount == nil},
		{FieldCreditAmount, r.CreditAmount == nil},
		{FieldDuration, r.Duration == nil},
		{FieldPurpose, r.Purpose == nil},
	}
	for _, m := range missing {
		if m.unset {
			return ApplicantInput{}, &EncodingError{Field: m.field, Reason: "missing value"}
		}
	}
	return ApplicantInput{
		Sex:             *r.Sex,
		Job:             *r.Job,
		Housing:         *r.Housing,
		SavingAccounts:  *r.SavingAccounts,
		CheckingAccount: *r.CheckingAccount,
		CreditAmount:    *r.CreditAmount,
		Duration:        *r.Duration,
		Purpose:         *r.Purpose,
	}, nil
}

// foldCode normalizes a categorical code before table lookup.
// A Caser is stateful, so one is built per call.
func foldCode(raw string) string {
	return cases.Fold().String(strings.TrimSpace(raw))
}
