package core

// Unknown marks a flyer field that could not be determined.
// It is distinct from the empty string.
const Unknown = "Unknown"

const (
	// DateLayout is the canonical layout of ValidFrom / ValidTo.
	DateLayout = "2006-01-02"
	// TimestampLayout is the layout of ParsedAt.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Flyer is a single promotional brochure of a shop.
//
// ValidFrom and ValidTo are either canonical dates (DateLayout) or Unknown.
// ParsedAt is stamped when extraction of the record finished.
type Flyer struct {
	Title        string
	ThumbnailURL string
	ShopName     string
	ValidFrom    string
	ValidTo      string
	ParsedAt     string
}

// Shop is one entry of the shop directory.
type Shop struct {
	// Endpoint is the link target of the shop's listing page, as found on the site.
	Endpoint string
	Name     string
}

// ShopFlyers groups the valid flyers of one shop.
type ShopFlyers struct {
	Shop   Shop
	Flyers []Flyer
}

// FlyerJSON is the serialized form of a Flyer.
type FlyerJSON struct {
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	ShopName   string `json:"shop_name"`
	ValidFrom  string `json:"valid_from"`
	ValidTo    string `json:"valid_to"`
	ParsedTime string `json:"parsed_time"`
}

// JSON returns the serialized form of f.
func (f Flyer) JSON() FlyerJSON {
	return FlyerJSON{
		Title:      f.Title,
		Thumbnail:  f.ThumbnailURL,
		ShopName:   f.ShopName,
		ValidFrom:  f.ValidFrom,
		ValidTo:    f.ValidTo,
		ParsedTime: f.ParsedAt,
	}
}

// Flatten returns every flyer of every shop, preserving order.
func Flatten(shops []ShopFlyers) []Flyer {
	var out []Flyer
	for _, s := range shops {
		out = append(out, s.Flyers...)
	}
	return out
}
