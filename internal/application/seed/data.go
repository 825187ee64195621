package seed

// Datos por defecto de 鉄板焼き居酒屋なかまる.

type supplierSeed struct {
	Type, Name, PostalCode, Address, Phone, Email string
	PaymentTerms                                   int
	BankName, BranchName, AccountType              string
	AccountNumber, AccountHolder, Notes            string
}

var defaultSuppliers = []supplierSeed{
	{
		Type: "精肉", Name: "相模原精肉センター", PostalCode: "252-0239",
		Address: "神奈川県相模原市中央区中央2-11-15", Phone: "042-755-1234", Email: "info@sagamihara-meat.co.jp",
		PaymentTerms: 30, BankName: "みずほ銀行", BranchName: "相模原支店", AccountType: "普通",
		AccountNumber: "1234567", AccountHolder: "カ）サガミハラセイニクセンター", Notes: "毎朝8時配送",
	},
	{
		Type: "鮮魚・シーフード", Name: "神奈川鮮魚市場", PostalCode: "252-0231",
		Address: "神奈川県相模原市中央区相模原3-4-10", Phone: "042-758-2345", Email: "sales@kanagawa-fish.co.jp",
		PaymentTerms: 30, BankName: "横浜銀行", BranchName: "相模原支店", AccountType: "普通",
		AccountNumber: "2345678", AccountHolder: "カ）カナガワセンギョイチバ", Notes: "毎朝7時配送、鮮度抜群",
	},
	{
		Type: "青果", Name: "横山台青果", PostalCode: "252-0242",
		Address: "神奈川県相模原市中央区横山台1-2-3", Phone: "042-704-3456", Email: "info@yokoyamadai-seika.co.jp",
		PaymentTerms: 30, BankName: "きらぼし銀行", BranchName: "相模原中央支店", AccountType: "普通",
		AccountNumber: "3456789", AccountHolder: "カ）ヨコヤマダイセイカ", Notes: "地元野菜中心、毎朝8時配送",
	},
	{
		Type: "酒類", Name: "相模原酒類販売", PostalCode: "252-0236",
		Address: "神奈川県相模原市中央区富士見1-5-8", Phone: "042-752-4567", Email: "sales@sagamihara-sake.co.jp",
		PaymentTerms: 30, BankName: "三井住友銀行", BranchName: "相模大野支店", AccountType: "普通",
		AccountNumber: "4567890", AccountHolder: "カ）サガミハラシュルイハンバイ", Notes: "翌日配送、ビール・日本酒・焼酎",
	},
}

const (
	supplierMeat = "相模原精肉センター"
	supplierFish = "神奈川鮮魚市場"
	supplierVeg  = "横山台青果"
	supplierSake = "相模原酒類販売"
)

type orderLineSeed struct {
	Name, Description string
	Quantity          int64
	UnitPrice         int64
}

type orderSeed struct {
	Number, Supplier, OrderDate, ExpectedDate, Status string
	Lines                                             []orderLineSeed
}

var defaultOrders = []orderSeed{
	{
		Number: "PO-2025-001", Supplier: supplierFish, OrderDate: "2025-01-15", ExpectedDate: "2025-01-16", Status: "delivered",
		Lines: []orderLineSeed{
			{"本マグロ（刺身用）", "1kg", 2, 8500},
			{"サーモン刺身", "500g×4", 4, 2800},
			{"ホタテ貝柱", "500g", 3, 3200},
			{"イカ（刺身用）", "1kg", 2, 1800},
		},
	},
	{
		Number: "PO-2025-002", Supplier: supplierSake, OrderDate: "2025-01-15", ExpectedDate: "2025-01-17", Status: "delivered",
		Lines: []orderLineSeed{
			{"獺祭 純米大吟醸", "720ml×6本", 6, 3500},
			{"八海山 純米吟醸", "1.8L×3本", 3, 4200},
			{"サッポロクラシック", "瓶ビール 500ml×24本", 1, 9600},
			{"芋焼酎 魔王", "1.8L×2本", 2, 5800},
		},
	},
	{
		Number: "PO-2025-003", Supplier: supplierVeg, OrderDate: "2025-01-16", ExpectedDate: "2025-01-17", Status: "ordered",
		Lines: []orderLineSeed{
			{"北海道産じゃがいも", "10kg", 2, 1800},
			{"玉ねぎ", "10kg", 2, 1200},
			{"アスパラガス", "1kg", 3, 2500},
			{"大根", "1本×10", 10, 180},
		},
	},
	{
		Number: "PO-2025-004", Supplier: supplierMeat, OrderDate: "2025-01-17", ExpectedDate: "2025-01-18", Status: "ordered",
		Lines: []orderLineSeed{
			{"ラム肉（ジンギスカン用）", "1kg×5", 5, 2800},
			{"豚バラ肉", "2kg", 3, 1600},
			{"鶏もも肉", "2kg×2", 2, 1400},
			{"牛タン（焼肉用）", "500g×2", 2, 4500},
		},
	},
	{
		Number: "PO-2025-005", Supplier: supplierFish, OrderDate: "2025-01-18", ExpectedDate: "2025-01-19", Status: "ordered",
		Lines: []orderLineSeed{
			{"活ホッケ", "1尾×5", 5, 800},
			{"カニ（ズワイガニ）", "500g×3", 3, 4200},
			{"ウニ", "100g×5", 5, 2800},
		},
	},
}

type itemSeed struct {
	Name, Category, Supplier, Unit        string
	Stock, Reorder, Optimal, Cost, Expiry string
	Location                              string
}

var defaultItems = []itemSeed{
	// 牛肉
	{"サーロインステーキ", "牛肉", supplierMeat, "kg", "4", "2", "8", "5800", "2025-01-27", "冷蔵庫A"},
	{"リブロース", "牛肉", supplierMeat, "kg", "3.5", "2", "7", "6200", "2025-01-27", "冷蔵庫A"},
	{"カルビ", "牛肉", supplierMeat, "kg", "6", "3", "10", "3800", "2025-01-28", "冷蔵庫A"},
	{"牛タン（焼肉用）", "牛肉", supplierMeat, "kg", "2", "1.5", "5", "4500", "2025-01-26", "冷蔵庫A"},

	// シーフード
	{"エビ（大）", "シーフード", supplierFish, "kg", "3", "2", "6", "3200", "2025-01-25", "冷蔵庫B"},
	{"イカ", "シーフード", supplierFish, "kg", "2.5", "2", "5", "1800", "2025-01-25", "冷蔵庫B"},
	{"ホタテ", "シーフード", supplierFish, "kg", "2", "1.5", "4", "3000", "2025-01-24", "冷蔵庫B"},
	{"タコ", "シーフード", supplierFish, "kg", "1.5", "1", "3", "2400", "2025-01-26", "冷蔵庫B"},

	// 野菜
	{"キャベツ", "野菜", supplierVeg, "玉", "15", "10", "25", "180", "2025-01-30", "冷蔵庫C"},
	{"もやし", "野菜", supplierVeg, "kg", "8", "5", "15", "80", "2025-01-24", "冷蔵庫C"},
	{"ニンニク", "野菜", supplierVeg, "kg", "2", "1", "4", "800", "2025-02-10", "倉庫"},
	{"玉ねぎ", "野菜", supplierVeg, "kg", "10", "5", "20", "150", "2025-02-15", "倉庫"},

	// ソース・調味料
	{"お好み焼きソース", "ソース・調味料", supplierVeg, "本", "5", "3", "10", "450", "", "倉庫"},
	{"焼肉のタレ", "ソース・調味料", supplierMeat, "本", "8", "4", "15", "380", "", "倉庫"},
	{"塩コショウ", "ソース・調味料", supplierVeg, "本", "10", "5", "20", "250", "", "倉庫"},
	{"サラダ油（大）", "ソース・調味料", supplierVeg, "本", "6", "3", "12", "680", "", "倉庫"},
}
