package dto

// DrinkRequest selects the record a drink applies to: a point-of-sale
// key, or the caller's own record of the given kind ("postpaid" when
// empty).
type DrinkRequest struct {
	UserKey string `form:"user_key" json:"user_key"`
	Kind    string `form:"kind" json:"kind"`
}

// TagDrinkRequest attributes the last drink to a catalog type.
type TagDrinkRequest struct {
	UserKey     string `form:"user_key" json:"user_key"`
	Kind        string `form:"kind" json:"kind"`
	DrinkTypeID int64  `form:"drink_type_id" json:"drink_type_id"`
}

// DrinkReceiptResponse reports the new balance back to the counter.
type DrinkReceiptResponse struct {
	Kind     string `json:"kind"`
	Username string `json:"username"`
	Money    string `json:"money"`
}
