package ml

import "strconv"

// FeatureCount is the input width the classifier was trained on.
const FeatureCount = 8

// FeatureVector is an encoded applicant in training column order.
type FeatureVector []float64

var sexCodes = map[Sex]int{
	SexFemale: 0,
	SexMale:   1,
}

var housingCodes = map[Housing]int{
	HousingOwn:  0,
	HousingFree: 1,
	HousingRent: 2,
}

var savingAccountsCodes = map[SavingAccounts]int{
	SavingsLittle:    0,
	SavingsModerate:  1,
	SavingsQuiteRich: 2,
	SavingsRich:      3,
}

var checkingAccountCodes = map[CheckingAccount]int{
	CheckingNone:     0,
	CheckingLittle:   1,
	CheckingModerate: 2,
	CheckingRich:     3,
}

var purposeCodes = map[Purpose]int{
	PurposeRadioTV:            0,
	PurposeEducation:          1,
	PurposeFurnitureEquipment: 2,
	PurposeNewCar:             3,
	PurposeUsedCar:            4,
	PurposeBusiness:           5,
	PurposeDomesticAppliances: 6,
	PurposeRepairs:            7,
	PurposeVacationOthers:     8,
}

// FeatureNames returns the training column names in vector order.
func FeatureNames() []string {
	return []string{
		"Sex",
		"Job",
		"Housing",
		"Saving accounts",
		"Checking account",
		"Credit amount",
		"Duration",
		"Purpose",
	}
}

// EncodeApplicant maps an applicant to its feature vector. Any value outside
// the mapping tables or the numeric domains is an *EncodingError whose Field
// is the form field name.
func EncodeApplicant(input ApplicantInput) (FeatureVector, error) {
	sex, err := lookupCode(FieldSex, sexCodes, input.Sex)
	if err != nil {
		return nil, err
	}
	housing, err := lookupCode(FieldHousing, housingCodes, input.Housing)
	if err != nil {
		return nil, err
	}
	savings, err := lookupCode(FieldSavingAccounts, savingAccountsCodes, input.SavingAccounts)
	if err != nil {
		return nil, err
	}
	checking, err := lookupCode(FieldCheckingAccount, checkingAccountCodes, input.CheckingAccount)
	if err != nil {
		return nil, err
	}
	purpose, err := lookupCode(FieldPurpose, purposeCodes, input.Purpose)
	if err != nil {
		return nil, err
	}

	if input.Job < MinJob || input.Job > MaxJob {
		return nil, &EncodingError{Field: FieldJob, Value: strconv.Itoa(input.Job), Reason: "job type not in 0..3"}
	}
	if input.CreditAmount < 0 {
		return nil, &EncodingError{Field: FieldCreditAmount, Value: strconv.Itoa(input.CreditAmount), Reason: "negative amount"}
	}
	if input.Duration < MinDuration || input.Duration > MaxDuration {
		return nil, &EncodingError{Field: FieldDuration, Value: strconv.Itoa(input.Duration), Reason: "duration not in 4..72 months"}
	}

	return FeatureVector{
		float64(sex),
		float64(input.Job),
		float64(housing),
		float64(savings),
		float64(checking),
		float64(input.CreditAmount),
		float64(input.Duration),
		float64(purpose),
	}, nil
}

func lookupCode[K ~string](field string, table map[K]int, value K) (int, error) {
	code, ok := table[K(foldCode(string(value)))]
	if !ok {
		return 0, &EncodingError{Field: field, Value: string(value)}
	}
	return code, nil
}
