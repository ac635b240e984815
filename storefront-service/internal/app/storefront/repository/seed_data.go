package repository

import (
	"github.com/lib/pq"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

type sampleProduct struct {
	product entity.Product
	reviews []entity.Review
}

func pexelsImages(photoID string) pq.StringArray {
	base := "https://images.pexels.com/photos/" + photoID + "/pexels-photo-" + photoID + ".jpeg"
	return pq.StringArray{
		base,
		base + "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		base + "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
	}
}

var standardSizes = pq.StringArray{"30ml", "50ml", "100ml"}

// sampleCatalog - стартовый ассортимент LotusAroma, цены в пайсах
var sampleCatalog = []sampleProduct{
	{
		product: entity.Product{
			Name:             "Moonlit Jasmine",
			Description:      "An enchanting blend of jasmine, vanilla, and amber notes. This exquisite fragrance evokes the serene beauty of a moonlit garden, perfect for evening occasions.",
			ShortDescription: "An enchanting blend of jasmine, vanilla, and amber notes.",
			Price:            649900, // ₹6,499
			ImageURLs:        pexelsImages("965989"),
			Sizes:            standardSizes,
			Category:         "Floral",
			IsNewArrival:     true,
			IsBestSeller:     false,
			AverageRating:    4.5,
			InStock:          true,
		},
		reviews: []entity.Review{
			{Username: "Priya Singh", Rating: 5, Comment: "This perfume is absolutely amazing! The jasmine notes are so authentic and the fragrance lasts all day."},
			{Username: "Raj Mehta", Rating: 4, Comment: "Beautiful scent, very elegant and sophisticated. The only downside is that it doesn't last as long as I hoped."},
		},
	},
	{
		product: entity.Product{
			Name:             "Royal Oud",
			Description:      "Rich, woody fragrance with notes of oud, cedarwood, and musk. This luxury perfume creates a sophisticated aura that lingers throughout the day and into the evening.",
			ShortDescription: "Rich, woody fragrance with notes of oud, cedarwood, and musk.",
			Price:            899900, // ₹8,999
			ImageURLs:        pexelsImages("3747250"),
			Sizes:            standardSizes,
			Category:         "Woody",
			IsNewArrival:     false,
			IsBestSeller:     true,
			AverageRating:    5.0,
			InStock:          true,
		},
		reviews: []entity.Review{
			{Username: "Aisha Khan", Rating: 5, Comment: "Royal Oud is the perfect name for this perfume. It's rich, luxurious and makes me feel like royalty every time I wear it."},
			{Username: "Vikram Patel", Rating: 5, Comment: "This is my signature scent now. Everyone asks me what I'm wearing. Worth every rupee!"},
		},
	},
	{
		product: entity.Product{
			Name:             "Velvet Rose",
			Description:      "Elegant and romantic with Damascus rose, peony, and sandalwood. This classic floral scent captures the essence of timeless femininity with a modern twist.",
			ShortDescription: "Elegant and romantic with Damascus rose, peony, and sandalwood.",
			Price:            529900, // ₹5,299
			ImageURLs:        pexelsImages("3059609"),
			Sizes:            standardSizes,
			Category:         "Floral",
			IsNewArrival:     false,
			IsBestSeller:     true,
			AverageRating:    4.0,
			InStock:          true,
		},
		reviews: []entity.Review{
			{Username: "Neha Sharma", Rating: 4, Comment: "The rose scent is beautiful but it's a bit lighter than I expected. Still love it though!"},
		},
	},
	{
		product: entity.Product{
			Name:             "Ocean Breeze",
			Description:      "Fresh aquatic scent with notes of sea salt, bergamot, and white musk. This refreshing fragrance is perfect for daily wear, evoking the freedom of coastal getaways.",
			ShortDescription: "Fresh aquatic scent with notes of sea salt, bergamot, and white musk.",
			Price:            479900, // ₹4,799
			ImageURLs:        pexelsImages("1961795"),
			Sizes:            standardSizes,
			Category:         "Fresh",
			IsNewArrival:     false,
			IsBestSeller:     false,
			AverageRating:    3.5,
			InStock:          true,
		},
	},
	{
		product: entity.Product{
			Name:             "Enchanted Garden",
			Description:      "A floral masterpiece with rose, lily, and peony notes. This luxurious fragrance transports you to a secret garden in full bloom, perfect for special occasions.",
			ShortDescription: "A floral masterpiece with rose, lily, and peony notes.",
			Price:            789900, // ₹7,899
			ImageURLs:        pexelsImages("5527899"),
			Sizes:            standardSizes,
			Category:         "Floral",
			IsNewArrival:     false,
			IsBestSeller:     true,
			AverageRating:    4.5,
			InStock:          true,
		},
	},
	{
		product: entity.Product{
			Name:             "Amber Oud",
			Description:      "Rich amber and exotic oud creating a warm, mysterious aura. This deep, sensual fragrance is perfect for evening wear and special occasions that call for something unforgettable.",
			ShortDescription: "Rich amber and exotic oud creating a warm, mysterious aura.",
			Price:            949900, // ₹9,499
			ImageURLs:        pexelsImages("10215680"),
			Sizes:            standardSizes,
			Category:         "Woody",
			IsNewArrival:     false,
			IsBestSeller:     true,
			AverageRating:    5.0,
			InStock:          true,
		},
	},
	{
		product: entity.Product{
			Name:             "Midnight Orchid",
			Description:      "Seductive blend of black orchid, vanilla, and dark chocolate. This intoxicating fragrance is perfect for evenings when you want to make a lasting impression.",
			ShortDescription: "Seductive blend of black orchid, vanilla, and dark chocolate.",
			Price:            699900, // ₹6,999
			ImageURLs:        pexelsImages("6712098"),
			Sizes:            standardSizes,
			Category:         "Oriental",
			IsNewArrival:     false,
			IsBestSeller:     true,
			AverageRating:    4.0,
			InStock:          true,
		},
	},
	{
		product: entity.Product{
			Name:             "Royal Mystic Oud",
			Description:      "A captivating blend of rare oud, sandalwood, and exotic spices that creates an unforgettable sensory experience. This luxury fragrance is crafted for those who appreciate exclusivity and sophistication.",
			ShortDescription: "A captivating blend of rare oud, sandalwood, and exotic spices.",
			Price:            1249900, // ₹12,499
			ImageURLs:        pexelsImages("4110256"),
			Sizes:            standardSizes,
			Category:         "Luxury",
			IsNewArrival:     true,
			IsBestSeller:     false,
			AverageRating:    4.8,
			InStock:          true,
		},
	},
}
