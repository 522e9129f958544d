package transform

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

// RawProductFootprint is a product footprint as read from a wire document,
// before any validation.
type RawProductFootprint struct {
	ID                  string                  `json:"id" yaml:"id"`
	SpecVersion         string                  `json:"specVersion" yaml:"specVersion"`
	PrecedingPfIDs      []string                `json:"precedingPfIds,omitempty" yaml:"precedingPfIds,omitempty"`
	Version             *Number                 `json:"version" yaml:"version"`
	Created             string                  `json:"created" yaml:"created"`
	Updated             string                  `json:"updated,omitempty" yaml:"updated,omitempty"`
	Status              string                  `json:"status" yaml:"status"`
	StatusComment       string                  `json:"statusComment,omitempty" yaml:"statusComment,omitempty"`
	ValidityPeriodStart string                  `json:"validityPeriodStart,omitempty" yaml:"validityPeriodStart,omitempty"`
	ValidityPeriodEnd   string                  `json:"validityPeriodEnd,omitempty" yaml:"validityPeriodEnd,omitempty"`
	CompanyName         string                  `json:"companyName" yaml:"companyName"`
	CompanyIDs          []string                `json:"companyIds" yaml:"companyIds"`
	ProductDescription  string                  `json:"productDescription" yaml:"productDescription"`
	ProductIDs          []string                `json:"productIds" yaml:"productIds"`
	ProductCategoryCPC  string                  `json:"productCategoryCpc" yaml:"productCategoryCpc"`
	ProductNameCompany  string                  `json:"productNameCompany" yaml:"productNameCompany"`
	Comment             string                  `json:"comment" yaml:"comment"`
	PCF                 *RawCarbonFootprint     `json:"pcf" yaml:"pcf"`
	Extensions          []RawDataModelExtension `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// RawCarbonFootprint is the pcf attribute of a wire document.
type RawCarbonFootprint struct {
	DeclaredUnit                       string                           `json:"declaredUnit" yaml:"declaredUnit"`
	UnitaryProductAmount               *Number                          `json:"unitaryProductAmount" yaml:"unitaryProductAmount"`
	PCfExcludingBiogenic               *Number                          `json:"pCfExcludingBiogenic" yaml:"pCfExcludingBiogenic"`
	PCfIncludingBiogenic               *Number                          `json:"pCfIncludingBiogenic,omitempty" yaml:"pCfIncludingBiogenic,omitempty"`
	FossilGhgEmissions                 *Number                          `json:"fossilGhgEmissions" yaml:"fossilGhgEmissions"`
	FossilCarbonContent                *Number                          `json:"fossilCarbonContent" yaml:"fossilCarbonContent"`
	BiogenicCarbonContent              *Number                          `json:"biogenicCarbonContent" yaml:"biogenicCarbonContent"`
	DLucGhgEmissions                   *Number                          `json:"dLucGhgEmissions,omitempty" yaml:"dLucGhgEmissions,omitempty"`
	LandManagementGhgEmissions         *Number                          `json:"landManagementGhgEmissions,omitempty" yaml:"landManagementGhgEmissions,omitempty"`
	OtherBiogenicGhgEmissions          *Number                          `json:"otherBiogenicGhgEmissions,omitempty" yaml:"otherBiogenicGhgEmissions,omitempty"`
	ILucGhgEmissions                   *Number                          `json:"iLucGhgEmissions,omitempty" yaml:"iLucGhgEmissions,omitempty"`
	BiogenicCarbonWithdrawal           *Number                          `json:"biogenicCarbonWithdrawal,omitempty" yaml:"biogenicCarbonWithdrawal,omitempty"`
	AircraftGhgEmissions               *Number                          `json:"aircraftGhgEmissions,omitempty" yaml:"aircraftGhgEmissions,omitempty"`
	CharacterizationFactors            string                           `json:"characterizationFactors" yaml:"characterizationFactors"`
	IpccCharacterizationFactorsSources []string                         `json:"ipccCharacterizationFactorsSources" yaml:"ipccCharacterizationFactorsSources"`
	CrossSectoralStandardsUsed         []string                         `json:"crossSectoralStandardsUsed" yaml:"crossSectoralStandardsUsed"`
	ProductOrSectorSpecificRules       []RawProductOrSectorSpecificRule `json:"productOrSectorSpecificRules,omitempty" yaml:"productOrSectorSpecificRules,omitempty"`
	BiogenicAccountingMethodology      string                           `json:"biogenicAccountingMethodology,omitempty" yaml:"biogenicAccountingMethodology,omitempty"`
	BoundaryProcessesDescription       string                           `json:"boundaryProcessesDescription" yaml:"boundaryProcessesDescription"`
	ReferencePeriodStart               string                           `json:"referencePeriodStart" yaml:"referencePeriodStart"`
	ReferencePeriodEnd                 string                           `json:"referencePeriodEnd" yaml:"referencePeriodEnd"`
	GeographyCountrySubdivision        string                           `json:"geographyCountrySubdivision,omitempty" yaml:"geographyCountrySubdivision,omitempty"`
	GeographyCountry                   string                           `json:"geographyCountry,omitempty" yaml:"geographyCountry,omitempty"`
	GeographyRegionOrSubregion         string                           `json:"geographyRegionOrSubregion,omitempty" yaml:"geographyRegionOrSubregion,omitempty"`
	SecondaryEmissionFactorSources     []RawEmissionFactorDS            `json:"secondaryEmissionFactorSources,omitempty" yaml:"secondaryEmissionFactorSources,omitempty"`
	ExemptedEmissionsPercent           *Number                          `json:"exemptedEmissionsPercent" yaml:"exemptedEmissionsPercent"`
	ExemptedEmissionsDescription       string                           `json:"exemptedEmissionsDescription" yaml:"exemptedEmissionsDescription"`
	PackagingEmissionsIncluded         *bool                            `json:"packagingEmissionsIncluded" yaml:"packagingEmissionsIncluded"`
	PackagingGhgEmissions              *Number                          `json:"packagingGhgEmissions,omitempty" yaml:"packagingGhgEmissions,omitempty"`
	AllocationRulesDescription         string                           `json:"allocationRulesDescription,omitempty" yaml:"allocationRulesDescription,omitempty"`
	UncertaintyAssessmentDescription   string                           `json:"uncertaintyAssessmentDescription,omitempty" yaml:"uncertaintyAssessmentDescription,omitempty"`
	PrimaryDataShare                   *Number                          `json:"primaryDataShare,omitempty" yaml:"primaryDataShare,omitempty"`
	DQI                                *RawDataQualityIndicators        `json:"dqi,omitempty" yaml:"dqi,omitempty"`
	Assurance                          *RawAssurance                    `json:"assurance,omitempty" yaml:"assurance,omitempty"`
}

type RawProductOrSectorSpecificRule struct {
	Operator          string   `json:"operator" yaml:"operator"`
	RuleNames         []string `json:"ruleNames" yaml:"ruleNames"`
	OtherOperatorName string   `json:"otherOperatorName,omitempty" yaml:"otherOperatorName,omitempty"`
}

type RawEmissionFactorDS struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

type RawDataQualityIndicators struct {
	CoveragePercent  *Number `json:"coveragePercent,omitempty" yaml:"coveragePercent,omitempty"`
	TechnologicalDQR *Number `json:"technologicalDQR,omitempty" yaml:"technologicalDQR,omitempty"`
	TemporalDQR      *Number `json:"temporalDQR,omitempty" yaml:"temporalDQR,omitempty"`
	GeographicalDQR  *Number `json:"geographicalDQR,omitempty" yaml:"geographicalDQR,omitempty"`
	CompletenessDQR  *Number `json:"completenessDQR,omitempty" yaml:"completenessDQR,omitempty"`
	ReliabilityDQR   *Number `json:"reliabilityDQR,omitempty" yaml:"reliabilityDQR,omitempty"`
}

type RawAssurance struct {
	Assurance    bool   `json:"assurance" yaml:"assurance"`
	Coverage     string `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	Level        string `json:"level,omitempty" yaml:"level,omitempty"`
	Boundary     string `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	ProviderName string `json:"providerName" yaml:"providerName"`
	CompletedAt  string `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	StandardName string `json:"standardName,omitempty" yaml:"standardName,omitempty"`
	Comments     string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

type RawDataModelExtension struct {
	SpecVersion   string         `json:"specVersion" yaml:"specVersion"`
	DataSchema    string         `json:"dataSchema" yaml:"dataSchema"`
	Documentation string         `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Data          map[string]any `json:"data" yaml:"data"`
}

// Number keeps the literal text of a numeric wire value. Both JSON numbers
// and numeric strings are accepted, so decimals survive without float
// rounding.
type Number struct {
	text string
}

// NewNumber wraps a literal such as "1.25".
func NewNumber(text string) *Number { return &Number{text: text} }

func (n *Number) String() string { return n.text }

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		return mismatch(string(b), "expected a number")
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.text = s
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		n.text = string(b)
	default:
		return mismatch(string(b), "expected a number")
	}
	return nil
}

func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return mismatch(node.Value, "expected a number")
	}
	switch node.ShortTag() {
	case "!!int", "!!float", "!!str":
		n.text = node.Value
		return nil
	}
	return mismatch(node.Value, "expected a number")
}

func (n *Number) MarshalJSON() ([]byte, error) { return json.Marshal(n.text) }

func mismatch(value, msg string) error {
	return &pact.ValidationError{Kind: pact.ErrTypeMismatch, Value: value, Message: msg}
}
