package service

import (
	"github.com/hjakub/drive-backend/internal/app/model"
)

// baselineProducts is the fixed catalog every deployment starts with.
// Products are identified by slug; the seeder only inserts slugs that
// are missing.
var baselineProducts = []model.Product{
	{
		Slug:        "cans-mango",
		Name:        "CANS Mango — 24 × 330ml",
		PriceCents:  59900,
		Image:       "/assets/img/products/test.png",
		HoverImage:  "/assets/img/products/test2.jpg",
		Description: "Refreshing mango flavour. Natural guarana caffeine, B vitamins, no added sugar.",
		Features:    model.FeatureList{"Natural caffeine", "Sugar free", "Vegan", "Recyclable can"},
	},
	{
		Slug:        "cans-citrus",
		Name:        "CANS Citrus — 24 × 330ml",
		PriceCents:  59900,
		Image:       "/assets/img/products/test.png",
		HoverImage:  "/assets/img/products/test2.jpg",
		Description: "Energizing citrus flavour. Natural caffeine, vitamins, no sugar.",
		Features:    model.FeatureList{"Citrus", "Sugar free", "Vegan", "Recyclable can"},
	},
	{
		Slug:        "cans-berry",
		Name:        "CANS Berry — 24 × 330ml",
		PriceCents:  59900,
		Image:       "/assets/img/products/test.png",
		HoverImage:  "/assets/img/products/test2.jpg",
		Description: "Smooth forest fruit mix. Natural caffeine, vitamins, no sugar.",
		Features:    model.FeatureList{"Forest fruit", "Sugar free", "Vegan", "Recyclable can"},
	},
	{
		// Slug referenced by the homepage call-to-action button.
		Slug:        "drive-starter-pack",
		Name:        "DRIVE Starter Pack",
		PriceCents:  99900,
		Image:       "/assets/img/products/test.png",
		HoverImage:  "/assets/img/products/test2.jpg",
		Description: "The DRIVE starter bundle. Mixed flavours, natural caffeine, no sugar.",
		Features:    model.FeatureList{"Mixed flavours", "Sugar free", "Vegan"},
	},
}
