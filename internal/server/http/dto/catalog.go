package dto

// AddDrinkTypeRequest registers a catalog entry.
type AddDrinkTypeRequest struct {
	Name     string `form:"name" json:"name"`
	Icon     string `form:"icon" json:"icon"`
	Quantity int64  `form:"quantity" json:"quantity"`
}

// SetDrinkTypeQuantityRequest overrides a stock counter.
type SetDrinkTypeQuantityRequest struct {
	ID       int64 `form:"id" json:"id"`
	Quantity int64 `form:"quantity" json:"quantity"`
}

// DrinkTypeResponse describes a catalog entry.
type DrinkTypeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Quantity int64  `json:"quantity"`
	Consumed int64  `json:"consumed"`
}
