package catalog

// Built-in vendors every installation starts with. User additions are
// persisted separately so this list can grow without clobbering them.
var DefaultVendors = []string{
	"Bidfood",
	"PFD Food Services",
	"Costco Wholesale",
	"Fresh Produce Market",
	"Harris Farm Markets",
	"Ocean Fresh Seafood",
	"Premium Meats Co",
	"Sydney Wholesale Dairy",
	"Campbells Cash & Carry",
	"Local Bakery Supplies",
}

var DefaultProducts = []string{
	"Chicken Breast",
	"Beef Mince",
	"Lamb Shoulder",
	"Salmon Fillet",
	"Prawns",
	"Basmati Rice",
	"Plain Flour",
	"Olive Oil",
	"Vegetable Oil",
	"Butter",
	"Milk",
	"Cream",
	"Mozzarella Cheese",
	"Eggs",
	"Tomatoes",
	"Onions",
	"Garlic",
	"Potatoes",
	"Lettuce",
	"Lemons",
	"Sugar",
	"Salt",
	"Black Pepper",
	"Paper Napkins",
	"Takeaway Containers",
	"Cleaning Supplies",
}
