package pact

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var cpcCodePattern = regexp.MustCompile(`^[0-9]{1,5}$`)

// ProductFootprintParams are the fields of a ProductFootprint. A zero ID is
// replaced by a random one, a zero SpecVersion by DefaultSpecVersion, an
// empty Status by StatusActive, a zero Created by the current time and a nil
// ValidityPeriod by the default derived from the footprint's reference
// period.
type ProductFootprintParams struct {
	ID                 uuid.UUID
	SpecVersion        SpecVersion
	PrecedingPfIDs     *PrecedingPfIDs
	Version            Version
	Created            DateTime
	Updated            *DateTime
	Status             Status
	StatusComment      string
	ValidityPeriod     *ValidityPeriod
	CompanyName        string
	CompanyIDs         *CompanyIDList
	ProductDescription string
	ProductIDs         *ProductIDList
	ProductCategoryCPC string
	ProductNameCompany string
	Comment            string
	PCF                *CarbonFootprint
	Extensions         []*DataModelExtension
}

func (p ProductFootprintParams) clone() ProductFootprintParams {
	p.PrecedingPfIDs = p.PrecedingPfIDs.Clone()
	p.Updated = cloneptr(p.Updated)
	p.ValidityPeriod = cloneptr(p.ValidityPeriod)
	p.CompanyIDs = p.CompanyIDs.Clone()
	p.ProductIDs = p.ProductIDs.Clone()
	if p.PCF != nil {
		p.PCF = &CarbonFootprint{p: p.PCF.p.clone()}
	}
	p.Extensions = append([]*DataModelExtension(nil), p.Extensions...)
	return p
}

func (p *ProductFootprintParams) applyDefaults() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SpecVersion.IsZero() {
		p.SpecVersion = DefaultSpecVersion
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Created.IsZero() {
		p.Created = Now()
	}
	if p.ValidityPeriod == nil && p.PCF != nil {
		vp := DefaultValidityPeriod(p.PCF.p.ReferencePeriod)
		p.ValidityPeriod = &vp
	}
}

// ProductFootprint is the aggregate root of the data model: one carbon
// footprint together with the identity of the company and product it is for.
type ProductFootprint struct {
	p ProductFootprintParams
}

func NewProductFootprint(p ProductFootprintParams) (*ProductFootprint, error) {
	p = p.clone()
	p.applyDefaults()
	if err := validateProductFootprint(p); err != nil {
		return nil, err
	}
	return &ProductFootprint{p: p}, nil
}

func validateProductFootprint(p ProductFootprintParams) error {
	// 1. Identity and versioning
	if p.ID == uuid.Nil {
		return missingErr("id")
	}
	if p.SpecVersion.Major() != 2 {
		return formatErr("specVersion", p.SpecVersion, "unsupported spec version %s", p.SpecVersion)
	}
	if p.PrecedingPfIDs.Contains(p.ID) {
		return inconsistentErr("precedingPfIds", "must not contain the footprint's own id %s", p.ID)
	}
	if _, err := NewVersion(p.Version.Int()); err != nil {
		return err
	}

	// 2. Timestamps and status
	if p.Created.IsZero() {
		return missingErr("created")
	}
	if p.Updated != nil {
		if p.Updated.IsZero() {
			return missingErr("updated")
		}
		if p.Updated.Before(p.Created) {
			return inconsistentErr("updated", "updated %s must not be before created %s", p.Updated, p.Created)
		}
	}
	if _, err := statuses.parse(string(p.Status)); err != nil {
		return Prefix("status", err)
	}

	// 3. Company and product
	if strings.TrimSpace(p.CompanyName) == "" {
		return missingErr("companyName")
	}
	if p.CompanyIDs.Len() == 0 {
		return missingErr("companyIds")
	}
	if strings.TrimSpace(p.ProductDescription) == "" {
		return missingErr("productDescription")
	}
	if p.ProductIDs.Len() == 0 {
		return missingErr("productIds")
	}
	if p.ProductCategoryCPC == "" {
		return missingErr("productCategoryCpc")
	}
	if !cpcCodePattern.MatchString(p.ProductCategoryCPC) {
		return formatErr("productCategoryCpc", p.ProductCategoryCPC, "%q is not a CPC code of 1 to 5 digits", p.ProductCategoryCPC)
	}
	if strings.TrimSpace(p.ProductNameCompany) == "" {
		return missingErr("productNameCompany")
	}

	// 4. Footprint and validity
	if p.PCF == nil {
		return missingErr("pcf")
	}
	if err := validateCarbonFootprint(p.PCF.p); err != nil {
		return Prefix("pcf", err)
	}
	if p.ValidityPeriod == nil || p.ValidityPeriod.IsZero() {
		return missingErr("validityPeriod")
	}
	refEnd := p.PCF.p.ReferencePeriod.End()
	if !p.ValidityPeriod.IsValid(refEnd) {
		return inconsistentErr("validityPeriod", "validity period must start no earlier than %s and end no later than %s", refEnd, refEnd.AddYears(validityYears))
	}

	// 5. Extensions
	for i, ext := range p.Extensions {
		if ext == nil {
			return missingErr("extensions" + indexField(i))
		}
	}
	return nil
}

func (pf *ProductFootprint) ID() uuid.UUID            { return pf.p.ID }
func (pf *ProductFootprint) SpecVersion() SpecVersion { return pf.p.SpecVersion }
func (pf *ProductFootprint) Version() Version         { return pf.p.Version }
func (pf *ProductFootprint) Created() DateTime        { return pf.p.Created }
func (pf *ProductFootprint) Updated() *DateTime       { return cloneptr(pf.p.Updated) }
func (pf *ProductFootprint) Status() Status           { return pf.p.Status }
func (pf *ProductFootprint) StatusComment() string    { return pf.p.StatusComment }
func (pf *ProductFootprint) CompanyName() string      { return pf.p.CompanyName }
func (pf *ProductFootprint) ProductDescription() string {
	return pf.p.ProductDescription
}
func (pf *ProductFootprint) ProductCategoryCPC() string { return pf.p.ProductCategoryCPC }
func (pf *ProductFootprint) ProductNameCompany() string { return pf.p.ProductNameCompany }
func (pf *ProductFootprint) Comment() string            { return pf.p.Comment }

func (pf *ProductFootprint) ValidityPeriod() ValidityPeriod { return *pf.p.ValidityPeriod }

func (pf *ProductFootprint) PrecedingPfIDs() *PrecedingPfIDs { return pf.p.PrecedingPfIDs.Clone() }
func (pf *ProductFootprint) CompanyIDs() *CompanyIDList      { return pf.p.CompanyIDs.Clone() }
func (pf *ProductFootprint) ProductIDs() *ProductIDList      { return pf.p.ProductIDs.Clone() }

// PCF returns a copy of the carbon footprint. Use Update to change it.
func (pf *ProductFootprint) PCF() *CarbonFootprint {
	return &CarbonFootprint{p: pf.p.PCF.p.clone()}
}

func (pf *ProductFootprint) Extensions() []*DataModelExtension {
	return append([]*DataModelExtension(nil), pf.p.Extensions...)
}

// Params returns a deep copy of the fields of pf.
func (pf *ProductFootprint) Params() ProductFootprintParams { return pf.p.clone() }

// Update applies fn to a copy of the fields and commits it if the result is
// valid. Defaults are not re-applied. On error pf is left unchanged.
func (pf *ProductFootprint) Update(fn func(*ProductFootprintParams)) error {
	next := pf.p.clone()
	fn(&next)
	next = next.clone()
	if err := validateProductFootprint(next); err != nil {
		return err
	}
	pf.p = next
	return nil
}

func (pf *ProductFootprint) SetStatus(status Status, comment string) error {
	return pf.Update(func(p *ProductFootprintParams) {
		p.Status = status
		p.StatusComment = comment
	})
}

// SetUpdated records a modification time and bumps the version.
func (pf *ProductFootprint) SetUpdated(at DateTime) error {
	return pf.Update(func(p *ProductFootprintParams) {
		p.Updated = &at
		p.Version++
	})
}

func (pf *ProductFootprint) SetValidityPeriod(vp ValidityPeriod) error {
	return pf.Update(func(p *ProductFootprintParams) { p.ValidityPeriod = &vp })
}

func (pf *ProductFootprint) SetPCF(cf *CarbonFootprint) error {
	return pf.Update(func(p *ProductFootprintParams) { p.PCF = cf })
}

func (pf *ProductFootprint) AddPrecedingPfID(id uuid.UUID) error {
	ids := pf.p.PrecedingPfIDs.Clone()
	if ids == nil {
		ids, _ = NewPrecedingPfIDs()
	}
	if err := ids.Append(id); err != nil {
		return err
	}
	return pf.Update(func(p *ProductFootprintParams) { p.PrecedingPfIDs = ids })
}

func (pf *ProductFootprint) AddExtension(ext *DataModelExtension) error {
	return pf.Update(func(p *ProductFootprintParams) { p.Extensions = append(p.Extensions, ext) })
}

type productFootprintWire struct {
	ID                 uuid.UUID             `json:"id"`
	SpecVersion        SpecVersion           `json:"specVersion"`
	PrecedingPfIDs     *PrecedingPfIDs       `json:"precedingPfIds,omitempty"`
	Version            Version               `json:"version"`
	Created            DateTime              `json:"created"`
	Updated            *DateTime             `json:"updated,omitempty"`
	Status             Status                `json:"status"`
	StatusComment      string                `json:"statusComment,omitempty"`
	ValidityStart      DateTime              `json:"validityPeriodStart"`
	ValidityEnd        DateTime              `json:"validityPeriodEnd"`
	CompanyName        string                `json:"companyName"`
	CompanyIDs         *CompanyIDList        `json:"companyIds"`
	ProductDescription string                `json:"productDescription"`
	ProductIDs         *ProductIDList        `json:"productIds"`
	ProductCategoryCPC string                `json:"productCategoryCpc"`
	ProductNameCompany string                `json:"productNameCompany"`
	Comment            string                `json:"comment"`
	PCF                *CarbonFootprint      `json:"pcf"`
	Extensions         []*DataModelExtension `json:"extensions,omitempty"`
}

func (pf *ProductFootprint) MarshalJSON() ([]byte, error) {
	p := pf.p
	w := productFootprintWire{
		ID:                 p.ID,
		SpecVersion:        p.SpecVersion,
		Version:            p.Version,
		Created:            p.Created,
		Updated:            p.Updated,
		Status:             p.Status,
		StatusComment:      p.StatusComment,
		ValidityStart:      p.ValidityPeriod.Start(),
		ValidityEnd:        p.ValidityPeriod.End(),
		CompanyName:        p.CompanyName,
		CompanyIDs:         p.CompanyIDs,
		ProductDescription: p.ProductDescription,
		ProductIDs:         p.ProductIDs,
		ProductCategoryCPC: p.ProductCategoryCPC,
		ProductNameCompany: p.ProductNameCompany,
		Comment:            p.Comment,
		PCF:                p.PCF,
		Extensions:         p.Extensions,
	}
	if p.PrecedingPfIDs.Len() > 0 {
		w.PrecedingPfIDs = p.PrecedingPfIDs
	}
	return json.Marshal(w)
}
