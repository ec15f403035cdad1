// Package i18n holds the user-facing strings of the bot for every supported language.
package i18n

import "strings"

// Language is a supported reply language tag.
type Language string

// Supported languages.
const (
	English Language = "en"
	Uzbek   Language = "uz"

	// Default is used until the user picks a language.
	Default = English
)

// Language selector labels shown on the reply keyboard.
const (
	LabelEnglish = "English 🇬🇧"
	LabelUzbek   = "O'zbek 🇺🇿"
)

// Catalog is the fixed set of strings for one language.
type Catalog struct {
	// Name is the language name embedded in the analysis instruction.
	Name             string
	Welcome          string
	LanguageSelected string
	Processing       string
	Analyzing        string
	Error            string
	SendImage        string
	Disclaimer       string

	ReportTitle     string
	AnalysisLabel   string
	DisclaimerLabel string
}

var catalogs = map[Language]Catalog{
	English: {
		Name:             "ENGLISH",
		Welcome:          "Welcome to Food Checker Bot! Please select your language:",
		LanguageSelected: "Language set to English. You can now send food product images for Halal checking.",
		Processing:       "Processing your image... Please wait.",
		Analyzing:        "Analyzing ingredients...",
		Error:            "Sorry, an error occurred. Please make sure the image is clear and try again.",
		SendImage:        "Please send a food product's description image for checking.",
		Disclaimer: "We do not claim or certify any product as ✅ Halal or ❌ Non-Halal. " +
			"🤖 Our bot only checks for the presence of prohibited ingredients or components 🔍 based on " +
			"the provided product information. " +
			"📌 The final decision regarding the suitability of the product rests solely with the user. " +
			"🛑 Please consult reliable sources or authorities if confirmation is needed.",
		ReportTitle:     "Analysis Result",
		AnalysisLabel:   "Analysis",
		DisclaimerLabel: "Disclaimer",
	},
	Uzbek: {
		Name:             "UZBEK",
		Welcome:          "Ovqat mahsulotlarini Tekshirish botiga xush kelibsiz! Iltimos, tilni tanlang:",
		LanguageSelected: "Til o'zbek tiliga o'rnatildi. Endi mahsulotni tekshirish uchun oziq-ovqat mahsulotlarining rasmlarini yuborishingiz mumkin.",
		Processing:       "Rasm qayta ishlanmoqda... Iltimos, kuting.",
		Analyzing:        "Tarkibiy qismlar tahlil qilinmoqda...",
		Error:            "Kechirasiz, xatolik yuz berdi. Iltimos, rasm aniq ekanligiga ishonch hosil qiling va qaytadan urinib ko'ring.",
		SendImage:        "Iltimos, maxsulotni tekshirish uchun oziq-ovqat mahsulotining tarkibini rasmini yuboring.",
		Disclaimer: "Biz hech qanday mahsulotni ✅ halol yoki ❌ nohalol deb da'vo qilmaymiz yoki sertifikatlamaymiz. " +
			"🤖 Bizning bot faqat taqdim etilgan mahsulot ma'lumotlariga asoslanib, " +
			"taqiqlangan ingredientlar yoki tarkibiy qismlarni 🔍 aniqlash uchun tekshiradi. " +
			"📌 Mahsulotning mosligi haqidagi yakuniy qaror foydalanuvchining o‘ziga bog‘liq. " +
			"🛑 Iltimos, zarur bo‘lsa, ishonchli manbalar yoki mutasaddi tashkilotlarga murojaat qiling.",
		ReportTitle:     "Tahlil natijasi",
		AnalysisLabel:   "Tahlil",
		DisclaimerLabel: "Ogohlantirish",
	},
}

var labels = map[string]Language{
	LabelEnglish: English,
	LabelUzbek:   Uzbek,
}

// Lookup returns the catalog for lang, falling back to the default language.
func Lookup(lang Language) Catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs[Default]
}

// Supported reports whether lang has a catalog.
func Supported(lang Language) bool {
	_, ok := catalogs[lang]
	return ok
}

// LanguageForLabel maps a selector label to its language.
func LanguageForLabel(text string) (Language, bool) {
	lang, ok := labels[strings.TrimSpace(text)]
	return lang, ok
}

// Labels returns the selector labels in keyboard order.
func Labels() []string {
	return []string{LabelEnglish, LabelUzbek}
}
