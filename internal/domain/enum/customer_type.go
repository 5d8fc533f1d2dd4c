package enum

// CustomerType distinguishes individual and corporate customers
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeCorporate  CustomerType = "corporate"
)

func (t CustomerType) String() string {
	return string(t)
}

// Valid reports whether the value is a known customer type
func (t CustomerType) Valid() bool {
	return t == CustomerTypeIndividual || t == CustomerTypeCorporate
}
