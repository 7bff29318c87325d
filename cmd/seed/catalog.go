package main

import (
	"github.com/shopspring/decimal"

	"eventures/internal/catalog"
)

var sampleEventTypes = []string{
	"Wedding",
	"Birthday Party",
	"Corporate Event",
	"Anniversary",
	"Baby Shower",
}

var sampleLocations = []string{
	"Banquet Hall",
	"Garden",
	"Beach",
	"Rooftop",
	"Home",
}

type sampleItem struct {
	category string
	name     string
	style    string
	price    string
	image    string
}

func sampleCatalog() []catalog.Item {
	groups := map[catalog.Kind][]sampleItem{
		catalog.KindDecoration: {
			{"Light", "LED Lights", "Modern", "10", "https://images.unsplash.com/photo-1582719478250-04a6f016fd9c"},
			{"Light", "Spotlights", "Vintage", "15", "https://images.unsplash.com/photo-1599491143532-6b78e7a2bb3c"},
			{"Light", "Fairy Lights", "Boho", "8", ""},
			{"Light", "Chandeliers", "Classic", "120", ""},
			{"Flowers", "Gardenias", "Rustic", "25", ""},
			{"Flowers", "Rose Bouquet", "Classic", "30", ""},
			{"Sound", "Speakers", "Modern", "60", ""},
			{"Sound", "Microphones", "Modern", "20", ""},
		},
		catalog.KindFurniture: {
			{"Chairs", "Folding Chair", "Metal", "10", "https://images.unsplash.com/photo-1519710164239-da123dc03ef4"},
			{"Chairs", "Banquet Chair", "Plastic", "12", "https://images.unsplash.com/photo-1555041469-a586c61ea9bc"},
			{"Chairs", "Lounge Chair", "Leather", "30", "https://images.unsplash.com/photo-1505692794403-82ed43c318f7"},
			{"Tables", "Round Table", "Wood", "50", "https://images.unsplash.com/photo-1524758631624-e2822e304c36"},
			{"Tables", "Banquet Table", "Plastic", "40", "https://images.unsplash.com/photo-1504384308090-c894fdcc538d"},
			{"Tables", "Cocktail Table", "Metal", "45", ""},
			{"Lounging", "Sofa", "Fabric", "100", ""},
			{"Lounging", "Ottoman", "Leather", "60", ""},
			{"StageFurniture", "Podium", "Wood", "150", ""},
			{"StageFurniture", "Stage Platform", "Metal/Wood", "300", ""},
		},
		catalog.KindUtensil: {
			{"Cups", "Ceramic Cup", "Ceramic", "5", "https://images.unsplash.com/photo-1556912167-f556f1f39f5b"},
			{"Cups", "Glass Cup", "Glass", "4", ""},
			{"Cups", "Espresso Cup", "Porcelain", "6", ""},
			{"Spoons", "Teaspoon", "Silver", "3", ""},
			{"Spoons", "Serving Spoon", "Wooden", "5", ""},
			{"Forks", "Dinner Fork", "Stainless Steel", "4", ""},
			{"Bowls", "Soup Bowl", "Ceramic", "7", ""},
			{"Bowls", "Salad Bowl", "Wooden", "10", ""},
			{"Plates", "Dinner Plate", "Porcelain", "9", ""},
			{"Plates", "Side Plate", "Ceramic", "6", ""},
		},
	}

	var items []catalog.Item
	for _, kind := range catalog.AllKinds() {
		for _, s := range groups[kind] {
			items = append(items, catalog.Item{
				Kind:     kind,
				Category: s.category,
				Name:     s.name,
				Style:    s.style,
				Price:    decimal.RequireFromString(s.price),
				ImageURL: s.image,
			})
		}
	}
	return items
}
