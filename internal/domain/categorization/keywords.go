package categorization

import "github.com/sudhakarans/expense-exterminator/internal/domain/extraction"

// categoryKeywords maps each category to its keyword set. Categories are
// tested in the order of categoryPriority; the first category with a hit
// wins, so overlapping keywords resolve deterministically.
var categoryKeywords = map[extraction.Category][]string{
	extraction.CategoryFood: {
		"swiggy", "zomato", "dominos", "pizza", "mcdonald", "kfc", "burger",
		"restaurant", "cafe", "coffee", "chai", "biryani", "dhaba", "food",
		"eat", "kitchen", "bakery", "sweets", "juice", "hotel sagar",
		"instamart", "blinkit", "zepto", "bigbasket", "grocery", "supermarket",
		"super market", "kirana", "mart",
	},
	extraction.CategoryTravel: {
		"uber", "ola", "rapido", "irctc", "redbus", "makemytrip", "goibibo",
		"indigo", "air india", "spicejet", "vistara", "metro", "petrol",
		"diesel", "fuel", "hpcl", "bpcl", "indian oil", "toll", "fastag",
		"parking", "cab", "taxi", "bus", "train", "flight",
	},
	extraction.CategoryShopping: {
		"amazon", "flipkart", "myntra", "ajio", "meesho", "nykaa", "snapdeal",
		"tatacliq", "reliance trends", "pantaloons", "westside", "zudio",
		"decathlon", "ikea", "croma", "vijay sales", "shopping", "store",
		"mall", "lifestyle",
	},
	extraction.CategoryBills: {
		"airtel", "jio", "vodafone", "bsnl", "recharge", "prepaid", "postpaid",
		"electricity", "bescom", "tneb", "mseb", "water bill", "gas",
		"broadband", "wifi", "dth", "tata sky", "bill payment", "billdesk",
		"rent", "maintenance", "emi", "insurance", "premium",
	},
	extraction.CategoryEntertainment: {
		"netflix", "hotstar", "prime video", "spotify", "gaana", "wynk",
		"bookmyshow", "pvr", "inox", "cinema", "movie", "game", "steam",
		"playstation", "xbox", "youtube premium", "sony liv", "zee5",
	},
	extraction.CategoryHealth: {
		"apollo", "pharmacy", "pharmeasy", "netmeds", "1mg", "medplus",
		"hospital", "clinic", "doctor", "diagnostic", "lab", "medical",
		"medicine", "cult.fit", "cultfit", "gym", "fitness",
	},
	extraction.CategoryEducation: {
		"udemy", "coursera", "byjus", "unacademy", "vedantu", "upgrad",
		"school", "college", "university", "tuition", "course", "exam fee",
		"books", "stationery", "skverse",
	},
	extraction.CategoryInvestment: {
		"zerodha", "groww", "upstox", "kuvera", "coin", "mutual fund", "sip",
		"nps", "ppf", "fixed deposit", "fd ", "gold", "etf", "stocks",
		"demat", "smallcase", "indmoney",
	},
}

// categoryPriority fixes the testing order. Earlier entries win on
// overlapping keywords.
var categoryPriority = []extraction.Category{
	extraction.CategoryFood,
	extraction.CategoryTravel,
	extraction.CategoryShopping,
	extraction.CategoryBills,
	extraction.CategoryEntertainment,
	extraction.CategoryHealth,
	extraction.CategoryEducation,
	extraction.CategoryInvestment,
}
