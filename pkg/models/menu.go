package models

// Menu bundles the three listings a storefront screen renders together.
type Menu struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
	Featured   []Product  `json:"featured"`
}

type Category struct {
	ID             string  `json:"_id"`
	ParentCategory *string `json:"parentCategory,omitempty"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Image          *Image  `json:"image,omitempty"`
	ImageSize      *string `json:"imageSize,omitempty"`
	CompanyID      string  `json:"companyId"`
	ConceptID      string  `json:"conceptId"`
	TerminalID     string  `json:"terminalId"`
	Order          int64   `json:"order"`
	IsHidden       bool    `json:"isHidden"`
	IsDisabled     bool    `json:"isDisabled"`
	IsDeleted      bool    `json:"isDeleted"`
}

// Product is a purchasable menu entry. The three trailing fields are
// runtime cart state stamped by the cart engine and are never part of
// the wire payload.
type Product struct {
	ID          string     `json:"_id"`
	CategoryID  string     `json:"categoryId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Code        string     `json:"code"`
	Unit        string     `json:"unit"`
	Price       float32    `json:"price"`
	Weight      Weight     `json:"weight"`
	Image       *Image     `json:"image,omitempty"`
	Nutrition   Nutrition  `json:"nutrition"`
	Modifiers   []Modifier `json:"modifiers,omitempty"`
	Badges      []Badge    `json:"badges,omitempty"`
	CompanyID   string     `json:"companyId"`
	ConceptID   string     `json:"conceptId"`
	TerminalID  string     `json:"terminalId"`
	Order       int64      `json:"order"`
	IsHidden    bool       `json:"isHidden"`
	IsDisabled  bool       `json:"isDisabled"`
	IsDeleted   bool       `json:"isDeleted"`

	Fingerprint    string     `json:"-"`
	OrderModifiers []Modifier `json:"-"`
	Quantity       float32    `json:"-"`
}

// Weight describes the weight tier of a product: the full portion
// weight and an optional minimum order weight.
type Weight struct {
	Full float32 `json:"full"`
	Min  float32 `json:"min"`
}

type Nutrition struct {
	Energy       *float32 `json:"energy,omitempty"`
	Fiber        *float32 `json:"fiber,omitempty"`
	Fat          *float32 `json:"fat,omitempty"`
	Carbohydrate *float32 `json:"carbohydrate,omitempty"`
}

// Modifier is a named group of add-on options.
type Modifier struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Order     int64    `json:"order"`
	MaxAmount float32  `json:"maxAmount"`
	MinAmount float32  `json:"minAmount"`
	Required  bool     `json:"required"`
	IsHidden  bool     `json:"isHidden"`
	Options   []Option `json:"options"`
}

// Option is a single choice inside a modifier group, carrying its own
// surcharge priced per unit weight.
type Option struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Order     int64   `json:"order"`
	MaxAmount float32 `json:"maxAmount"`
	MinAmount float32 `json:"minAmount"`
	Required  bool    `json:"required"`
	IsHidden  bool    `json:"isHidden"`
	Price     float32 `json:"price"`
}

type Badge struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Image     *Image `json:"image,omitempty"`
	Order     int64  `json:"order"`
	CompanyID string `json:"companyId"`
	ConceptID string `json:"conceptId"`
}

// Featured groups the products promoted on a concept's storefront.
type Featured struct {
	ID        string    `json:"_id"`
	CompanyID string    `json:"companyId"`
	ConceptID string    `json:"conceptId"`
	Products  []Product `json:"products"`
}

type Image struct {
	Body string  `json:"body"`
	Hash *string `json:"hash,omitempty"`
}

// ByCategory filters products belonging to the given category.
func ByCategory(products []Product, categoryID string) []Product {
	var out []Product
	for _, p := range products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// ByParentCategory filters categories nested under the given parent.
func ByParentCategory(categories []Category, parentID string) []Category {
	var out []Category
	for _, c := range categories {
		if c.ParentCategory != nil && *c.ParentCategory == parentID {
			out = append(out, c)
		}
	}
	return out
}
