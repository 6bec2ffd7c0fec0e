package model

// DrinkType is a catalog entry drinks can be tagged with.
type DrinkType struct {
	ID       int64
	Name     string
	Icon     string
	Quantity int64
	Consumed int64
}
