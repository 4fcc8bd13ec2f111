package encyclopedia

import "strconv"

// Category is a top-level encyclopedia tab.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Topic is one entry in a category's hierarchy; techniques group under a
// parent heading.
type Topic struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	ParentGroup string `json:"parentGroup,omitempty"`
	Title       string `json:"title"`
	Badge       string `json:"badge,omitempty"`
}

var categories = []Category{
	{ID: "INGREDIENTS", Label: "Ingredients", Icon: "📋"},
	{ID: "TECHNIQUES", Label: "Techniques", Icon: "🔪"},
	{ID: "MEXICO", Label: "Mexico", Icon: "🇲🇽"},
	{ID: "JAPAN", Label: "Japan", Icon: "🇯🇵"},
	{ID: "SPAIN", Label: "Spain", Icon: "🇪🇸"},
	{ID: "ITALY", Label: "Italy", Icon: "🇮🇹"},
	{ID: "FRANCE", Label: "France", Icon: "🇫🇷"},
}

func buildTopics(category, idPrefix, badge string, titles []string) []Topic {
	out := make([]Topic, 0, len(titles))
	for i, title := range titles {
		out = append(out, Topic{
			ID:       idPrefix + "-" + strconv.Itoa(i+1),
			Category: category,
			Title:    title,
			Badge:    badge,
		})
	}
	return out
}

func groupedTopics(category, idPrefix, group, badge string, titles []string) []Topic {
	out := make([]Topic, 0, len(titles))
	for i, title := range titles {
		out = append(out, Topic{
			ID:          idPrefix + "-" + strconv.Itoa(i+1),
			Category:    category,
			ParentGroup: group,
			Title:       title,
			Badge:       badge,
		})
	}
	return out
}

var topicsByCategory = map[string][]Topic{
	"INGREDIENTS": buildTopics("INGREDIENTS", "ing", "verified", []string{
		"Grains & Cereals", "Vegetables", "Fruits", "Herbs & Spices",
		"Legumes & Pulses", "Dairy & Cheeses", "Meats & Game", "Fish & Seafood",
		"Oils & Fats", "Nuts & Seeds", "Sweeteners", "Fermented & Pickled",
		"Sauces & Condiments", "Gelling & Thickening Agents",
		"Sourdoughs & Starters", "Specialty Ingredients",
	}),
	"TECHNIQUES": concatTopics(
		groupedTopics("TECHNIQUES", "tech-k", "Knife Skills", "verified", []string{
			"Chopping", "Slicing", "Dicing", "Julienning", "Brunoise", "Peeling & Paring",
		}),
		groupedTopics("TECHNIQUES", "tech-c", "Cooking Methods", "verified", []string{
			"Boiling", "Steaming", "Poaching", "Grilling", "Roasting", "Baking",
			"Frying", "Sautéing", "Blanching", "Sous-vide",
		}),
		groupedTopics("TECHNIQUES", "tech-p", "Preparation", "verified", []string{
			"Marinating", "Fermenting", "Smoking", "Curing", "Pickling",
			"Emulsifying", "Clarifying",
		}),
		groupedTopics("TECHNIQUES", "tech-pl", "Plating", "verified", []string{
			"Classic Styles", "Modern Styles", "Garnishing", "Texture & Height", "Color Theory",
		}),
	),
	"MEXICO": buildTopics("MEXICO", "mex", "heritage", []string{
		"Culinary History", "Pre-Columbian Traditions", "Colonial Influences",
		"Traditional Ingredients", "Cooking Techniques",
		"Corn Gastronomy and Nixtamalization", "Regional Cuisines",
		"Culinary Masters", "Iconic Dishes", "Traditional Tools",
		"Festivals and Food", "Street Food Culture", "Sauces & Moles Varieties",
		"Staple Foods", "Traditional Beverages", "Indigenous Influence",
		"Religious & Festive Dishes", "Modern Mexican Cuisine",
		"Fusion & Contemporary Styles", "Markets & Food Distribution",
		"Local Foodways & Agriculture",
	}),
	"JAPAN": buildTopics("JAPAN", "jpn", "heritage", []string{
		"Washoku Tradition", "Historical Development", "Seasonal Cooking",
		"Traditional Ingredients", "Kaiseki Cuisine", "Regional Variations",
		"Culinary Philosophy", "Traditional Dishes", "Cooking Utensils",
		"Tea Culture", "Sushi & Sashimi Culture",
		"Noodle Varieties (Ramen, Soba, Udon)",
		"Fermentation (Miso, Soy, Pickles, Sake)", "Street Food / Izakaya",
		"Presentation & Aesthetics", "Festive/Religious Cuisine",
		"Modern Japanese Fusion", "Seafood Traditions", "Obentos & Home Cooking",
		"Confectionery (Wagashi)",
	}),
	"SPAIN": buildTopics("SPAIN", "esp", "heritage", []string{
		"Culinary Evolution", "Moorish Influences", "Regional Cuisines",
		"Traditional Ingredients", "Cooking Methods", "Tapas Culture",
		"Renowned Chefs", "Classic Dishes", "Traditional Equipment",
		"Culinary Festivals", "Seafood & Coasts", "Jamon & Cured Meats",
		"Paella & Rice Dishes", "Olive Oil Culture", "Wines & Sherries",
		"Spanish Sweets & Pastries", "Bar & Taverna Culture",
		"Religious and Festive Foods", "Spanish Bread Traditions",
		"Farmhouse & Mountain Cooking", "Gastronomic Societies (Txokos)",
		"Contemporary Spanish Cuisine",
	}),
	"ITALY": buildTopics("ITALY", "ita", "heritage", []string{
		"Regional Diversity", "Ancient Origins", "Renaissance Influence",
		"Traditional Ingredients", "Pasta Culture", "Regional Specialties",
		"Master Chefs", "Iconic Recipes", "Traditional Tools", "Food Traditions",
		"Olive Oil & Vinegar Traditions", "Cheese Varieties",
		"Bread & Pizza Traditions", "Coffee & Espresso Culture",
		"Antipasti & Aperitivi", "Seafood Traditions",
		"Confectionery & Desserts", "Festivals & Celebrations",
		"Wine Regions & Traditions", "Home Cooking / Familiare",
		"Italian Street Food", "Slow Food Movement",
		"Contemporary & Fusion Italian",
	}),
	"FRANCE": buildTopics("FRANCE", "fra", "heritage", []string{
		"Haute Cuisine History", "Classical Foundations", "Regional Traditions",
		"Essential Ingredients", "Classical Techniques", "Wine Regions",
		"Legendary Chefs", "Classic Preparations", "Professional Equipment",
		"Culinary Schools", "Bistro & Brasserie Culture", "Charcuterie & Pâtés",
		"Bread & Viennoiserie (Bakery)", "Cheese Traditions",
		"Pastry & Desserts (Pâtisserie)", "Butter & Dairy Traditions",
		"Festive & Religious Cuisine", "Sauces & Stocks", "French Home Cooking",
		"Contemporary / Fusion French", "Food Markets & Distribution",
		"Great Food Writers & Literature", "Gastronomic Tourism",
	}),
}

func concatTopics(groups ...[]Topic) []Topic {
	var out []Topic
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// findTopic resolves a topic ID across every category.
func findTopic(id string) (Topic, bool) {
	for _, topics := range topicsByCategory {
		for _, t := range topics {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Topic{}, false
}
