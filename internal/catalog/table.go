package catalog

import "snapfind/internal/domain"

const PlaceholderImage = "/static/placeholder.svg"

type entry struct {
	key      string
	template domain.Product
}

// table is scanned in order and the first key contained in the label wins.
// A later, more specific key never overrides an earlier match.
var table = []entry{
	{key: "cowboy hat", template: domain.Product{
		Title:       "Premium Western Cowboy Hat",
		Description: "Authentic Western-style cowboy hat crafted from premium materials. Features a classic design with a shapeable brim and comfortable interior sweatband for all-day wear.",
		Categories:  []string{"Fashion", "Western Wear", "Accessories", "Headwear"},
		Pros: []string{
			"Genuine materials for authentic look and feel",
			"Shapeable brim allows for customized styling",
			"Moisture-wicking sweatband for comfort",
			"Weather-resistant construction",
		},
		Cons: []string{
			"Premium pricing compared to synthetic alternatives",
			"Requires proper care and maintenance",
			"May need reshaping after exposure to rain",
		},
		Specifications: domain.Specs{
			{Name: "Material", Value: "Premium felt with leather accents"},
			{Name: "Crown Height", Value: "4.5 inches"},
			{Name: "Brim Width", Value: "3.75 inches"},
			{Name: "Colors Available", Value: "Black, Brown, Tan, White"},
			{Name: "Sizes", Value: "S, M, L, XL (6¾ to 8)"},
			{Name: "Care", Value: "Spot clean, store in hat box when not in use"},
		},
		RelatedItems: []domain.RelatedProduct{
			related("1", "Deluxe Leather Cowboy Hat", "Premium leather construction with decorative band.", "$189.99"),
			related("2", "Straw Cowboy Hat", "Lightweight summer option with ventilated design.", "$79.99"),
			related("3", "Hat Care Kit", "Everything needed to maintain your hat's shape and finish.", "$34.99"),
			related("4", "Western Hat Rack", "Wall-mounted storage for up to 6 hats.", "$45.99"),
		},
	}},
	{key: "sombrero", template: domain.Product{
		Title:       "Authentic Mexican Sombrero",
		Description: "Traditional wide-brimmed Mexican sombrero with colorful decorative elements. Handcrafted by artisans using traditional techniques and materials.",
		Categories:  []string{"Cultural Wear", "Traditional Hats", "Mexican Attire", "Festival Wear"},
		Pros: []string{
			"Authentic handcrafted design",
			"Wide brim provides excellent sun protection",
			"Vibrant, traditional decorative elements",
			"Conversation starter at parties and events",
		},
		Cons: []string{
			"Large size can be cumbersome for storage",
			"Decorative versions not ideal for everyday wear",
			"May require special cleaning methods",
		},
		Specifications: domain.Specs{
			{Name: "Material", Value: "Palm leaves or straw with fabric trim"},
			{Name: "Brim Width", Value: "12-15 inches"},
			{Name: "Crown Height", Value: "6 inches"},
			{Name: "Decoration", Value: "Colorful embroidery and pom-poms"},
			{Name: "Weight", Value: "Approximately 1.5 lbs"},
			{Name: "Origin", Value: "Mexico"},
		},
		RelatedItems: []domain.RelatedProduct{
			related("1", "Mini Decorative Sombrero", "Perfect for table decorations or as a souvenir.", "$24.99"),
			related("2", "Premium Charro Sombrero", "Elegant embroidered sombrero for special occasions.", "$149.99"),
			related("3", "Sombrero Display Stand", "Showcase your sombrero as a decorative piece.", "$39.99"),
			related("4", "Mexican Serape Blanket", "Colorful traditional blanket to complement your sombrero.", "$59.99"),
		},
	}},
	{key: "microphone", template: domain.Product{
		Title:       "Professional Dynamic Vocal Microphone",
		Description: "Studio-quality dynamic microphone designed for vocal performances, podcasting, and recording. Features cardioid pickup pattern to minimize background noise and feedback.",
		Categories:  []string{"Audio Equipment", "Recording Gear", "Performance Tools", "Podcasting"},
		Pros: []string{
			"Exceptional sound clarity and vocal reproduction",
			"Durable metal construction for stage use",
			"Cardioid pattern reduces unwanted background noise",
			"Low handling noise for professional recordings",
		},
		Cons: []string{
			"Requires proper technique for optimal results",
			"May need additional accessories (stand, pop filter)",
			"Higher price point than entry-level options",
		},
		Specifications: domain.Specs{
			{Name: "Type", Value: "Dynamic"},
			{Name: "Polar Pattern", Value: "Cardioid"},
			{Name: "Frequency Response", Value: "50Hz to 15kHz"},
			{Name: "Impedance", Value: "150 ohms"},
			{Name: "Connector", Value: "XLR"},
			{Name: "Weight", Value: "0.66 lbs (300g)"},
		},
		RelatedItems: []domain.RelatedProduct{
			related("1", "Adjustable Microphone Stand", "Heavy-duty stand with boom arm for flexible positioning.", "$49.99"),
			related("2", "Pop Filter", "Reduces plosives for cleaner vocal recordings.", "$19.99"),
			related("3", "XLR Cable (20ft)", "Professional-grade cable for clear signal transmission.", "$29.99"),
			related("4", "Portable Audio Interface", "Connect your microphone to any computer for recording.", "$119.99"),
		},
	}},
	{key: "stage", template: domain.Product{
		Title:       "Professional Performance Stage Platform",
		Description: "Modular performance stage platform designed for events, concerts, and theatrical productions. Features a sturdy construction with adjustable height and non-slip surface.",
		Categories:  []string{"Event Equipment", "Performance Gear", "Theater Supplies", "Concert Hardware"},
		Pros: []string{
			"Modular design for customizable configurations",
			"Quick and easy assembly with minimal tools",
			"Adjustable height to accommodate various venues",
			"High weight capacity for performers and equipment",
		},
		Cons: []string{
			"Requires storage space when not in use",
			"Multiple units needed for larger performances",
			"Professional installation recommended for complex setups",
		},
		Specifications: domain.Specs{
			{Name: "Dimensions", Value: "4ft x 4ft (standard panel)"},
			{Name: "Height Range", Value: "1-3ft (adjustable)"},
			{Name: "Weight Capacity", Value: "Up to 125 lbs per square foot"},
			{Name: "Material", Value: "Aluminum frame with non-slip surface"},
			{Name: "Setup Time", Value: "Approximately 30 minutes per section"},
			{Name: "Includes", Value: "Adjustable legs, connectors, and safety rails"},
		},
		RelatedItems: []domain.RelatedProduct{
			related("1", "Stage Skirting (16ft)", "Professional pleated fabric to conceal under-stage area.", "$129.99"),
			related("2", "Stage Steps with Handrail", "Safe and secure access to elevated stages.", "$249.99"),
			related("3", "Transport Cart", "Heavy-duty cart for moving stage platforms.", "$189.99"),
			related("4", "LED Stage Lighting Kit", "Complete lighting solution for small to medium stages.", "$399.99"),
		},
	}},
}

func related(id, title, description, price string) domain.RelatedProduct {
	return domain.RelatedProduct{ID: id, Title: title, Description: description, Price: price, ImageURL: PlaceholderImage}
}

// Keys returns the table keys in declaration order.
func Keys() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.key
	}
	return out
}
