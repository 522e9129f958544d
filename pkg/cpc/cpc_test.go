package cpc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

func TestLookup(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		name     string
		code     string
		want     string
		wantOK   bool
		wantKind error
	}{
		{name: "wheat", code: "0111", want: "Wheat", wantOK: true},
		{name: "section", code: "0", want: "Agriculture, forestry and fishery products", wantOK: true},
		{name: "subclass", code: "23110", want: "Wheat and meslin flour", wantOK: true},
		{name: "unknown but valid", code: "99999", wantOK: false},
		{name: "letters", code: "abc", wantKind: pact.ErrInvalidFormat},
		{name: "six digits", code: "123456", wantKind: pact.ErrInvalidFormat},
		{name: "signed", code: "-111", wantKind: pact.ErrInvalidFormat},
		{name: "empty", code: "", wantKind: pact.ErrMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := l.Lookup(tt.code)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Errorf("Lookup() error = %v, want kind %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup() unexpected error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Lookup() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Title != tt.want {
				t.Errorf("Lookup() title = %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestRecordLevel(t *testing.T) {
	tests := []struct {
		code string
		want Level
	}{
		{"0", LevelSection},
		{"01", LevelDivision},
		{"011", LevelGroup},
		{"0111", LevelClass},
		{"01111", LevelSubclass},
	}
	for _, tt := range tests {
		if got := (Record{Code: tt.code}).Level(); got != tt.want {
			t.Errorf("Level(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestParentAndPath(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	parent, ok, err := l.Parent("0111")
	if err != nil || !ok || parent.Code != "011" || parent.Title != "Cereals" {
		t.Errorf("Parent(0111) = %+v, %v, %v", parent, ok, err)
	}
	if _, ok, _ := l.Parent("0"); ok {
		t.Error("Parent(0) should have no parent")
	}

	path, err := l.Path("01111")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	var codes []string
	for _, r := range path {
		codes = append(codes, r.Code)
	}
	if strings.Join(codes, ",") != "0,01,011,0111,01111" {
		t.Errorf("Path(01111) = %v", codes)
	}
}

func TestNewLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{name: "two rows", input: "code,title\n0111,Wheat\n0112,Maize (corn)\n", wantLen: 2},
		{name: "leading spaces", input: "code, title\n0111, Wheat\n", wantLen: 1},
		{name: "wrong header", input: "id,name\n0111,Wheat\n", wantErr: true},
		{name: "bad code", input: "code,title\n01a1,Wheat\n", wantErr: true},
		{name: "no title", input: "code,title\n0111,\n", wantErr: true},
		{name: "duplicate", input: "code,title\n0111,Wheat\n0111,Wheat\n", wantErr: true},
		{name: "extra column", input: "code,title\n0111,Wheat,x\n", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLookup(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLookup() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && l.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", l.Len(), tt.wantLen)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpc.csv")
	if err := os.WriteFile(path, []byte("code,title\n0111,Wheat\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	l, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want not exist", err)
	}
}

func TestComplete(t *testing.T) {
	bundled, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if bundled.Complete() {
		t.Error("bundled excerpt reports Complete() = true")
	}
	if _, ok, _ := bundled.Lookup("3342"); ok {
		t.Error("Lookup(3342) found a code the excerpt does not carry")
	}

	for _, section := range []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		if _, ok, _ := bundled.Lookup(section); !ok {
			t.Errorf("bundled excerpt is missing section %s", section)
		}
	}

	full, err := NewLookup(strings.NewReader("code,title\n0111,Wheat\n"))
	if err != nil {
		t.Fatalf("NewLookup() error = %v", err)
	}
	if !full.Complete() {
		t.Error("NewLookup() table reports Complete() = false")
	}
}
