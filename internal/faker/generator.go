// Package faker produces the fake values that fill location and employee rows.
package faker

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

type Generator struct {
	f *gofakeit.Faker
}

// NewGenerator returns a generator seeded with seed. Zero picks a random seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{f: gofakeit.New(seed)}
}

func (g *Generator) FirstName() string { return g.f.FirstName() }
func (g *Generator) LastName() string  { return g.f.LastName() }
func (g *Generator) JobTitle() string  { return g.f.JobTitle() }

// Password is ten characters of letters, digits and symbols, short enough for
// the CHAR(15) pwd column.
func (g *Generator) Password() string {
	return g.f.Password(true, true, true, true, false, 10)
}

func (g *Generator) IPv4() string   { return g.f.IPv4Address() }
func (g *Generator) Street() string { return g.f.Street() }
func (g *Generator) City() string   { return g.f.City() }
func (g *Generator) State() string  { return g.f.StateAbr() }

// SSN formats nine random digits as NNN-NN-NNNN.
func (g *Generator) SSN() string {
	n := g.f.Number(0, 999999999)
	return fmt.Sprintf("%03d-%02d-%04d", n/1000000, n/10000%100, n%10000)
}
