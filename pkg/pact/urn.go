package pact

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// urnPattern is the RFC 8141 assigned-name syntax with optional r/q/f
// components folded into the namespace specific string.
var urnPattern = regexp.MustCompile(`(?i)^urn:([a-z0-9][a-z0-9-]{0,30}[a-z0-9]):([a-z0-9()+,\-.:=@;$_!*'%/?#~&]+)$`)

// URN is an RFC 8141 Uniform Resource Name.
type URN struct {
	value string
	nid   string
	nss   string
}

// ParseURN validates s against RFC 8141 syntax.
func ParseURN(s string) (URN, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return URN{}, missingErr("")
	}
	m := urnPattern.FindStringSubmatch(s)
	if m == nil {
		return URN{}, formatErr("", s, "%q is not a valid URN", s)
	}
	return URN{value: s, nid: m[1], nss: m[2]}, nil
}

func (u URN) NID() string    { return u.nid }
func (u URN) NSS() string    { return u.nss }
func (u URN) String() string { return u.value }
func (u URN) IsZero() bool   { return u.value == "" }

func (u URN) MarshalJSON() ([]byte, error) { return json.Marshal(u.value) }

// IDKind identifies which Pathfinder identifier template a URN matched.
type IDKind string

const (
	IDKindBuyerAssigned  IDKind = "buyer-assigned"
	IDKindVendorAssigned IDKind = "vendor-assigned"
	IDKindCAS            IDKind = "cas"
	IDKindIUPACInChI     IDKind = "iupac-inchi"
)

// idPattern is one accepted identifier template. check, when set, runs on
// the first capture group after the pattern matched.
type idPattern struct {
	kind  IDKind
	re    *regexp.Regexp
	check func(value string) error
}

var companyIDPatterns = []idPattern{
	{kind: IDKindBuyerAssigned, re: regexp.MustCompile(`^urn:pathfinder:company:customcode:buyer-assigned:(.+)$`)},
	{kind: IDKindVendorAssigned, re: regexp.MustCompile(`^urn:pathfinder:company:customcode:vendor-assigned:(.+)$`)},
}

var productIDPatterns = []idPattern{
	{kind: IDKindBuyerAssigned, re: regexp.MustCompile(`^urn:pathfinder:product:customcode:buyer-assigned:(.+)$`)},
	{kind: IDKindVendorAssigned, re: regexp.MustCompile(`^urn:pathfinder:product:customcode:vendor-assigned:(.+)$`)},
	{kind: IDKindCAS, re: regexp.MustCompile(`^urn:pathfinder:product:id:cas:(\d{2,7}-\d{2}-\d)$`), check: checkCASNumber},
	{kind: IDKindIUPACInChI, re: regexp.MustCompile(`^urn:pathfinder:product:id:iupac-inchi:(.+)$`), check: checkInChI},
}

// parseIdentifier validates s as a URN and then against one pattern set.
func parseIdentifier(s, what string, patterns []idPattern) (URN, IDKind, error) {
	u, err := ParseURN(s)
	if err != nil {
		return URN{}, "", err
	}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(u.value)
		if m == nil {
			continue
		}
		if p.check != nil {
			if err := p.check(m[1]); err != nil {
				return URN{}, "", err
			}
		}
		return u, p.kind, nil
	}
	return URN{}, "", formatErr("", s, "%q is not a valid %s", s, what)
}

// checkCASNumber verifies the check digit of a CAS registry number: the
// last digit equals the sum of the other digits, each multiplied by its
// position counted from the right, modulo 10.
func checkCASNumber(cas string) error {
	digits := strings.ReplaceAll(cas, "-", "")
	body, check := digits[:len(digits)-1], int(digits[len(digits)-1]-'0')

	sum := 0
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * (len(body) - i)
	}
	if sum%10 != check {
		return formatErr("", cas, "CAS number %s has an invalid check digit", cas)
	}
	return nil
}

func checkInChI(escaped string) error {
	inchi, err := url.PathUnescape(escaped)
	if err != nil {
		return formatErr("", escaped, "InChI %q is not correctly escaped", escaped)
	}
	if !strings.HasPrefix(inchi, "InChI=") {
		return formatErr("", escaped, "InChI %q must start with \"InChI=\"", inchi)
	}
	return nil
}

// CompanyID is a URN identifying a company.
type CompanyID struct {
	urn  URN
	kind IDKind
}

// ParseCompanyID accepts buyer- or vendor-assigned company codes.
func ParseCompanyID(s string) (CompanyID, error) {
	u, kind, err := parseIdentifier(s, "company identifier", companyIDPatterns)
	if err != nil {
		return CompanyID{}, err
	}
	return CompanyID{urn: u, kind: kind}, nil
}

// MustParseCompanyID is like ParseCompanyID but panics on error.
func MustParseCompanyID(s string) CompanyID {
	id, err := ParseCompanyID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (c CompanyID) URN() URN       { return c.urn }
func (c CompanyID) Kind() IDKind   { return c.kind }
func (c CompanyID) String() string { return c.urn.value }

func (c CompanyID) MarshalJSON() ([]byte, error) { return json.Marshal(c.urn.value) }

// ProductID is a URN identifying a product.
type ProductID struct {
	urn  URN
	kind IDKind
}

// ParseProductID accepts buyer- or vendor-assigned product codes, CAS
// registry numbers and escaped IUPAC InChI strings.
func ParseProductID(s string) (ProductID, error) {
	u, kind, err := parseIdentifier(s, "product identifier", productIDPatterns)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID{urn: u, kind: kind}, nil
}

// MustParseProductID is like ParseProductID but panics on error.
func MustParseProductID(s string) ProductID {
	id, err := ParseProductID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (p ProductID) URN() URN       { return p.urn }
func (p ProductID) Kind() IDKind   { return p.kind }
func (p ProductID) String() string { return p.urn.value }

func (p ProductID) MarshalJSON() ([]byte, error) { return json.Marshal(p.urn.value) }
