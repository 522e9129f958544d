package pact

// Wire names of the CarbonFootprint attributes whose presence depends on the
// reference period.
const (
	FieldPrimaryDataShare              = "primaryDataShare"
	FieldDQI                           = "dqi"
	FieldPCfIncludingBiogenic          = "pCfIncludingBiogenic"
	FieldDLucGhgEmissions              = "dLucGhgEmissions"
	FieldLandManagementGhgEmissions    = "landManagementGhgEmissions"
	FieldOtherBiogenicGhgEmissions     = "otherBiogenicGhgEmissions"
	FieldBiogenicCarbonWithdrawal      = "biogenicCarbonWithdrawal"
	FieldBiogenicAccountingMethodology = "biogenicAccountingMethodology"
)

var requiredFrom2025 = []string{
	FieldPrimaryDataShare,
	FieldDQI,
	FieldPCfIncludingBiogenic,
	FieldDLucGhgEmissions,
	FieldLandManagementGhgEmissions,
	FieldOtherBiogenicGhgEmissions,
	FieldBiogenicCarbonWithdrawal,
	FieldBiogenicAccountingMethodology,
}

// RequiredFields returns the period-dependent CarbonFootprint attributes
// that must each be present for a footprint measured over rp. The result is
// empty for periods ending before 2025.
func RequiredFields(rp ReferencePeriod) []string {
	if !rp.Includes2025OrLater() {
		return nil
	}
	out := make([]string, len(requiredFrom2025))
	copy(out, requiredFrom2025)
	return out
}

// AtLeastOneOfFields returns attributes of which at least one must be
// present for a footprint measured over rp.
func AtLeastOneOfFields(rp ReferencePeriod) []string {
	if rp.Includes2025OrLater() {
		return nil
	}
	return []string{FieldPrimaryDataShare, FieldDQI}
}
