package domain

var Tables = []interface{}{
	// System
	&SysUser{},
	&SysOprLog{},
	// Catalog
	&Category{},
	&FoodItem{},
	// Orders
	&Order{},
	&OrderItem{},
}
