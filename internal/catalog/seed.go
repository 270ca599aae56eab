package catalog

import (
	"github.com/bazaarnow/marketplace/internal/models"
)

// Default returns the demo catalog: Hyderabad kirana stores and a
// representative product set. Prices are in paise.
func Default() *Catalog {
	return New(seedStores(), seedProducts())
}

func seedStores() []models.Store {
	return []models.Store{
		{ID: "s1", Name: "Heritage Fresh", Location: "Gachibowli", City: "Hyderabad", Rating: 4.5, IsOpen: true, Image: "https://picsum.photos/seed/heritage/400/300"},
		{ID: "s2", Name: "Ratnadeep Supermarket", Location: "Madhapur", City: "Hyderabad", Rating: 4.7, IsOpen: true, Image: "https://picsum.photos/seed/ratnadeep/400/300"},
		{ID: "s3", Name: "Vijetha Super Market", Location: "Kukatpally", City: "Hyderabad", Rating: 4.3, IsOpen: true, Image: "https://picsum.photos/seed/vijetha/400/300"},
		{ID: "s4", Name: "Q-Mart Specialty", Location: "Gachibowli", City: "Hyderabad", Rating: 4.8, IsOpen: false, Image: "https://picsum.photos/seed/qmart/400/300"},
		{ID: "s5", Name: "More Supermarket", Location: "Ameerpet", City: "Hyderabad", Rating: 4.1, IsOpen: true, Image: "https://picsum.photos/seed/more/400/300"},
		{ID: "s6", Name: "Nilgiris Store", Location: "Secunderabad", City: "Hyderabad", Rating: 4.4, IsOpen: true, Image: "https://picsum.photos/seed/nilgiris/400/300"},
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Full Cream Milk", Price: 4000, Unit: "Litre", Category: "Dairy", StoreID: "s1", InStock: true},
		{ID: "p2", Name: "Brown Bread", Price: 3000, Unit: "Packet", Category: "Grains", StoreID: "s1", InStock: true},
		{ID: "p3", Name: "Cage Free Eggs", Price: 7500, Unit: "Packet", Category: "Dairy", StoreID: "s2", InStock: true},
		{ID: "p4", Name: "Basmati Rice", Price: 12000, Unit: "kg", Category: "Grains", StoreID: "s2", InStock: true},
		{ID: "p5", Name: "Moong Dal", Price: 9500, Unit: "kg", Category: "Grains", StoreID: "s3", InStock: true},
		{ID: "p6", Name: "Organic Apple", Price: 18000, Unit: "kg", Category: "Produce", StoreID: "s3", InStock: true},
		{ID: "p7", Name: "Fresh Spinach", Price: 2500, Unit: "Packet", Category: "Produce", StoreID: "s4", InStock: false},
		{ID: "p8", Name: "Tomato Ketchup", Price: 11000, Unit: "Packet", Category: "Snacks", StoreID: "s4", InStock: true},
		{ID: "p9", Name: "Potato Chips", Price: 2000, Unit: "Packet", Category: "Snacks", StoreID: "s5", InStock: true},
		{ID: "p10", Name: "Orange Juice", Price: 9900, Unit: "Litre", Category: "Beverages", StoreID: "s5", InStock: true},
		{ID: "p11", Name: "Greek Yogurt", Price: 6500, Unit: "Packet", Category: "Dairy", StoreID: "s6", InStock: true},
		{ID: "p12", Name: "Whole Wheat Atta", Price: 23000, Unit: "kg", Category: "Grains", StoreID: "s6", InStock: true},
		{ID: "p13", Name: "Peanut Butter", Price: 24900, Unit: "Packet", Category: "Snacks", StoreID: "s1", InStock: true},
		{ID: "p14", Name: "Green Tea", Price: 15500, Unit: "Packet", Category: "Beverages", StoreID: "s2", InStock: true},
		{ID: "p15", Name: "Paneer", Price: 8000, Unit: "Packet", Category: "Dairy", StoreID: "s3", InStock: true},
		{ID: "p16", Name: "Sunflower Oil", Price: 14500, Unit: "Litre", Category: "Grains", StoreID: "s4", InStock: true},
		{ID: "p17", Name: "Fresh Bananas", Price: 4500, Unit: "kg", Category: "Produce", StoreID: "s5", InStock: true},
		{ID: "p18", Name: "Dark Chocolate", Price: 12500, Unit: "Packet", Category: "Snacks", StoreID: "s6", InStock: false},
	}
}
