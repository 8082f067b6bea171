package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

type seedItem struct {
	file     string
	category string
	price    int64
}

// seedItems is the shop's own list. Order here is display order.
var seedItems = []seedItem{
	// Sweets
	{"Aathira_Paan.png", models.CategorySweets, 450},
	{"Athirasam.jpg", models.CategorySweets, 460},
	{"Baby_Milk_Cake.png", models.CategorySweets, 550},
	{"Badam_Burfi.jpg", models.CategorySweets, 700},
	{"Badam_Milk.jpg", models.CategorySweets, 640},
	{"Badam_Mysore_Pak.png", models.CategorySweets, 960},
	{"Badusha.png", models.CategorySweets, 400},
	{"Banaras_Soan_Papdi.png", models.CategorySweets, 640},
	{"Blackcurrant_Chenpauv.png", models.CategorySweets, 640},
	{"Bombay_Milk_Halwa.png", models.CategorySweets, 640},
	{"Boondi_Laddu.png", models.CategorySweets, 380},
	{"Carrot_Halwa.jpg", models.CategorySweets, 560},
	{"Carrot_Mysore_Pak.jpg", models.CategorySweets, 640},
	{"Cashew_Cake.png", models.CategorySweets, 960},
	{"Chandira_Kala.png", models.CategorySweets, 640},
	{"Country_Sugar_Kambu_Laddu.jpg", models.CategorySweets, 660},
	{"Dates_Halwa.png", models.CategorySweets, 400},
	{"Dry_Jamun.png", models.CategorySweets, 440},
	{"Elaneer_Payasam.jpg", models.CategorySweets, 150},
	{"Ellu_Urundai.png", models.CategorySweets, 460},
	{"Gaja_Carrot_Cake.png", models.CategorySweets, 640},
	{"Guava_Mysorepak.jpg", models.CategorySweets, 800},
	{"Honey_Dew_Sweet.jpg", models.CategorySweets, 600},
	{"Ilaneer_Alwa.png", models.CategorySweets, 520},
	{"Jackfruit_Mysore_Pak.png", models.CategorySweets, 800},
	{"Jilebi.jpg", models.CategorySweets, 380},
	{"Kaja_Kathali.png", models.CategorySweets, 960},
	{"Kaju_Athi_Cake.png", models.CategorySweets, 960},
	{"Kaju_Pista_Roll.png", models.CategorySweets, 850},
	{"Kalakand.png", models.CategorySweets, 600},
	{"Karupatti_Bombay_Jilebi.jpg", models.CategorySweets, 480},
	{"Karupatti_Halwa.jpg", models.CategorySweets, 550},
	{"Karupatti_Jilebi.jpg", models.CategorySweets, 480},
	{"Karupatti_Kaju_Katli.jpg", models.CategorySweets, 960},
	{"Karupatti_Moongar_Laddu.png", models.CategorySweets, 480},
	{"Karupatti_Thengai_Burfi.png", models.CategorySweets, 450},
	{"Karuppatti_Burfi.jpg", models.CategorySweets, 450},
	{"Kesar_Badam_Cake.png", models.CategorySweets, 700},
	{"Kesar_Chenna_Sweet.png", models.CategorySweets, 650},
	{"Klaasic_Mysore_Pak.png", models.CategorySweets, 440},
	{"Kothumai_Halwa.jpg", models.CategorySweets, 480},
	{"Makkan_Peda.png", models.CategorySweets, 640},
	{"Malai_Barfi.png", models.CategorySweets, 640},
	{"Malai_Sandwich.png", models.CategorySweets, 600},
	{"Milk_Peda.png", models.CategorySweets, 600},
	{"Mini_Jamun.jpg", models.CategorySweets, 400},
	{"Mini_Rasagulla.jpg", models.CategorySweets, 400},
	{"Modi_Pak__Ring_Pak.png", models.CategorySweets, 480},
	{"Motichoor_Laddu.png", models.CategorySweets, 480},
	{"Mysore_Pak.jpg", models.CategorySweets, 440},
	{"Naatu_Sakkarai_Paasi_Arisi_Laddu.jpg", models.CategorySweets, 660},
	{"Nattu_sakkarai_Ragi_Laddu.jpg", models.CategorySweets, 660},
	{"Nattu_sakkarai_karuppu_Urad_Laddu.jpg", models.CategorySweets, 660},
	{"Ney_Appam.jpg", models.CategorySweets, 250},
	{"Ney_Mysore_Pak.png", models.CategorySweets, 640},
	{"Orange_Rasgulla.png", models.CategorySweets, 460},
	{"Paneer_Jamun.png", models.CategorySweets, 600},
	{"Paruppu_Opputtu.png", models.CategorySweets, 300},
	{"Pineapple_Kesari.jpg", models.CategorySweets, 350},
	{"Pista_Burfi.jpg", models.CategorySweets, 750},
	{"Pori_Urundai.png", models.CategorySweets, 200},
	{"Rasberi_Rasgulla.png", models.CategorySweets, 450},
	{"Rasmalai.jpg", models.CategorySweets, 50},
	{"Rava_Laddu.png", models.CategorySweets, 540},
	{"Real_Mango_Roll.png", models.CategorySweets, 600},
	{"Real_Pineapple_Roll.png", models.CategorySweets, 600},
	{"Red_Banana_Mysore_Pak.jpg", models.CategorySweets, 800},
	{"Sam_Sam.png", models.CategorySweets, 640},
	{"Sampakali.png", models.CategorySweets, 640},
	{"Sevaalai_pala.jpg", models.CategorySweets, 300},
	{"Sugarcane_Milk_Halwa.png", models.CategorySweets, 520},
	{"Then_Mittai.png", models.CategorySweets, 200},
	{"Thengai_Appam.png", models.CategorySweets, 280},
	{"White_Aathira_Paan.png", models.CategorySweets, 460},
	{"Yellow_Agra_Pan.png", models.CategorySweets, 460},
	{"elaneer_halwa.jpg", models.CategorySweets, 520},
	{"karupatti_mysurpa.jpg", models.CategorySweets, 600},
	{"nattu_sakkarai_solam_laddu.jpg", models.CategorySweets, 660},
	{"orange_agra_paan.png", models.CategorySweets, 460},
	{"paneer_jalebi.jpg", models.CategorySweets, 420},
	{"கேசர்_பேடா.png", models.CategorySweets, 600},

	// Karam
	{"Bombay_Mixture.jpg", models.CategoryKaram, 460},
	{"Butter_Murukku.jpg", models.CategoryKaram, 400},
	{"Butter_Pepper_Sev.jpg", models.CategoryKaram, 400},
	{"Carrot_Chips.png", models.CategoryKaram, 360},
	{"Chettinad_Mixture.jpg", models.CategoryKaram, 340},
	{"Coconut_Milk_Murukku.png", models.CategoryKaram, 460},
	{"Corn_Flakes_Mixture.jpg", models.CategoryKaram, 460},
	{"Finger_Chips.png", models.CategoryKaram, 280},
	{"Flattened_Rice_Mixture.jpg", models.CategoryKaram, 380},
	{"Garlic_Murukku.jpg", models.CategoryKaram, 460},
	{"Ginger_Thattai_Murukku.jpg", models.CategoryKaram, 560},
	{"Handmade_Murukku.png", models.CategoryKaram, 350},
	{"Manapparai_Murukku.jpg", models.CategoryKaram, 460},
	{"Masala_Kadalai.png", models.CategoryKaram, 460},
	{"Milagu_Ring_Murukku.jpg", models.CategoryKaram, 440},
	{"Mini_Kai_Murukku.jpg", models.CategoryKaram, 360},
	{"Onion_Murukku.jpg", models.CategoryKaram, 460},
	{"Onion_Rings.jpg", models.CategoryKaram, 280},
	{"Pagava_Chips.png", models.CategoryKaram, 300},
	{"Pepper_Cashew.jpg", models.CategoryKaram, 700},
	{"Pepper_Kara_Sev.jpg", models.CategoryKaram, 400},
	{"Pepper_Thattai_Murukku.jpg", models.CategoryKaram, 460},
	{"Ragi_Murukku.jpg", models.CategoryKaram, 460},
	{"Red_Rice_Sev.jpg", models.CategoryKaram, 400},
	{"Rice_Ribbon_Pakoda.png", models.CategoryKaram, 320},
	{"Sattur_Sev.jpg", models.CategoryKaram, 330},
	{"Sesame_Murukku.jpg", models.CategoryKaram, 460},
	{"Spicy_Seedai.jpg", models.CategoryKaram, 320},
	{"Spicy_Thattai_Murukku.jpg", models.CategoryKaram, 460},
	{"Tomato_Murukku.png", models.CategoryKaram, 340},
	{"Urad_Dal_Murukku.png", models.CategoryKaram, 350},
	{"Wheel_Chips.jpg", models.CategoryKaram, 280},

	// Chat
	{"Ada_Set.png", models.CategoryChat, 80},
	{"Bhel_Puri.png", models.CategoryChat, 70},
	{"Bombay_Bhel_Puri.png", models.CategoryChat, 90},
	{"Cheese_Pav_Bhaji.png", models.CategoryChat, 120},
	{"Dahi_Katori_Chaat.jpg", models.CategoryChat, 100},
	{"Dahi_Papdi_Chaat.png", models.CategoryChat, 100},
	{"Dahi_Puri.png", models.CategoryChat, 90},
	{"Fruit_Bhel_Puri.png", models.CategoryChat, 110},
	{"Halu_Tikki.jpg", models.CategoryChat, 80},
	{"Masala_Cutlet.jpg", models.CategoryChat, 70},
	{"Masala_Katori_Chaat.jpg", models.CategoryChat, 90},
	{"Masala_Puri.png", models.CategoryChat, 70},
	{"Masala_Samosa_Chaat.jpg", models.CategoryChat, 90},
	{"Paneer_Pav_Bhaji.png", models.CategoryChat, 130},
	{"Rasagulla_Chaat_(Curd_version).jpg", models.CategoryChat, 120},
	{"Rasagulla_Chaat_(Masala_Style).jpg", models.CategoryChat, 120},
	{"Sev_Puri.jpg", models.CategoryChat, 80},
	{"Vada_Pav.jpg", models.CategoryChat, 60},
	{"Veg_Cutlet.png", models.CategoryChat, 60},
}

var categoryDefaultPrice = map[string]int64{
	models.CategorySweets: 450,
	models.CategoryKaram:  350,
	models.CategoryChat:   80,
}

// SeedSource serves the built-in catalog. It never fails.
type SeedSource struct{}

func (SeedSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SeedProducts(), nil
}

// SeedProducts builds the built-in product list. Ids and display order follow
// list position, starting at 1.
func SeedProducts() []models.Product {
	products := make([]models.Product, 0, len(seedItems))
	for i, item := range seedItems {
		name := FormatName(item.file)
		price := item.price
		if price == 0 {
			price = categoryDefaultPrice[item.category]
		}
		products = append(products, models.Product{
			ID:          i + 1,
			Name:        name,
			Category:    item.category,
			SubCategory: Classify(name, item.category),
			Description: describe(name, item.category),
			Price:       price,
			Order:       i + 1,
			ImageRef:    item.file,
		})
	}
	return products
}

func describe(name, category string) string {
	switch category {
	case models.CategorySweets:
		return fmt.Sprintf("Delicious homemade %s made with premium ghee and ingredients.", name)
	case models.CategoryKaram:
		return fmt.Sprintf("Crunchy and spicy %s, perfect for tea time snacks.", name)
	default:
		return fmt.Sprintf("Authentic %s with tangy and spicy flavors.", name)
	}
}

// FormatName turns an asset file name such as "Badam_Mysore_Pak.png" into a
// display name: extension dropped, separators turned into spaces and the
// first ASCII letter of each word upper-cased.
func FormatName(file string) string {
	base, _, _ := strings.Cut(file, ".")
	if decoded, err := url.PathUnescape(base); err == nil {
		base = decoded
	}
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	for i, w := range words {
		words[i] = capitalizeFirstWordChar(w)
	}
	return strings.Join(words, " ")
}

func capitalizeFirstWordChar(w string) string {
	for i := 0; i < len(w); i++ {
		c := w[i]
		isLower := c >= 'a' && c <= 'z'
		isWord := isLower || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
		if !isWord {
			continue
		}
		if isLower {
			return w[:i] + string(c-'a'+'A') + w[i+1:]
		}
		return w
	}
	return w
}
