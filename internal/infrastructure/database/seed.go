package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"gorm.io/gorm"
)

type seedCrop struct {
	name           string
	scientificName string
	description    string
	imageURL       string
}

type seedDisease struct {
	crop     string
	name     string
	symptoms string
	causes   string
	organic  string
	chemical string
}

// seedCatalog populates the crop and disease tables on first run.
// Seeding only happens when the crops table is empty, so re-running
// initialization against an existing database is a no-op.
func seedCatalog(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Crop{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count crops: %w", err)
	}
	if count > 0 {
		logger.Debug("catalog already seeded", slog.Int64("crops", count))
		return nil
	}

	logger.Info("seeding crop and disease catalog")

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cropIDs := make(map[string]domain.Crop, len(seedCrops))
		for _, sc := range seedCrops {
			crop := domain.Crop{
				Name:           sc.name,
				ScientificName: sc.scientificName,
				Description:    sc.description,
				ImageURL:       sc.imageURL,
			}
			if err := tx.Create(&crop).Error; err != nil {
				return fmt.Errorf("failed to seed crop %s: %w", sc.name, err)
			}
			cropIDs[sc.name] = crop
		}

		diseases := make([]domain.Disease, 0, len(seedDiseases))
		for _, sd := range seedDiseases {
			crop, ok := cropIDs[sd.crop]
			if !ok {
				return fmt.Errorf("seed disease %s references unknown crop %s", sd.name, sd.crop)
			}
			diseases = append(diseases, domain.Disease{
				CropID:            crop.ID,
				Name:              sd.name,
				Symptoms:          sd.symptoms,
				Causes:            sd.causes,
				OrganicTreatment:  sd.organic,
				ChemicalTreatment: sd.chemical,
			})
		}
		if err := tx.CreateInBatches(diseases, 100).Error; err != nil {
			return fmt.Errorf("failed to seed diseases: %w", err)
		}

		logger.Info("catalog seeded",
			slog.Int("crops", len(seedCrops)),
			slog.Int("diseases", len(diseases)))
		return nil
	})
}

var seedCrops = []seedCrop{
	{"Tomato", "Solanum lycopersicum", "Common garden vegetable with red fruits", "/images/crops/tomato.jpg"},
	{"Potato", "Solanum tuberosum", "Root vegetable and a staple food", "/images/crops/potato.jpg"},
	{"Rice", "Oryza sativa", "Staple food for more than half of the world population", "/images/crops/rice.jpg"},
	{"Wheat", "Triticum aestivum", "Cereal grain cultivated worldwide", "/images/crops/wheat.jpg"},
	{"Corn", "Zea mays", "Cereal grain domesticated in Mesoamerica", "/images/crops/corn.jpg"},
	{"Cotton", "Gossypium hirsutum", "Soft, fluffy staple fiber that grows in a boll", "/images/crops/cotton.jpg"},
	{"Sugarcane", "Saccharum officinarum", "Tall perennial grass used for sugar production", "/images/crops/sugarcane.jpg"},
	{"Soybean", "Glycine max", "Legume species native to East Asia", "/images/crops/soybean.jpg"},
	{"Chickpea", "Cicer arietinum", "Annual legume of the family Fabaceae", "/images/crops/chickpea.jpg"},
	{"Onion", "Allium cepa", "Vegetable that is the most widely cultivated species of the genus Allium", "/images/crops/onion.jpg"},
	{"Chili Pepper", "Capsicum annuum", "Fruit of plants from the genus Capsicum", "/images/crops/chili.jpg"},
	{"Eggplant", "Solanum melongena", "Plant species in the nightshade family Solanaceae", "/images/crops/eggplant.jpg"},
	{"Okra", "Abelmoschus esculentus", "Flowering plant in the mallow family", "/images/crops/okra.jpg"},
	{"Cucumber", "Cucumis sativus", "Widely-cultivated creeping vine plant in the Cucurbitaceae family", "/images/crops/cucumber.jpg"},
	{"Mango", "Mangifera indica", "Juicy stone fruit belonging to the genus Mangifera", "/images/crops/mango.jpg"},
	{"Banana", "Musa", "Edible fruit produced by several kinds of large herbaceous flowering plants", "/images/crops/banana.jpg"},
	{"Coconut", "Cocos nucifera", "Member of the palm tree family", "/images/crops/coconut.jpg"},
	{"Groundnut", "Arachis hypogaea", "Legume crop grown mainly for its edible seeds", "/images/crops/groundnut.jpg"},
	{"Mustard", "Brassica juncea", "Species of mustard plant", "/images/crops/mustard.jpg"},
	{"Turmeric", "Curcuma longa", "Flowering plant of the ginger family", "/images/crops/turmeric.jpg"},
}

var seedDiseases = []seedDisease{
	{"Tomato", "Early Blight", "Brown spots with concentric rings on leaves", "Alternaria solani fungus", "Remove infected leaves; Apply neem oil; Crop rotation", "Apply copper-based fungicide; Use chlorothalonil"},
	{"Tomato", "Late Blight", "Water-soaked spots on leaves, white fuzzy growth", "Phytophthora infestans", "Remove infected plants; Improve air circulation; Apply compost tea", "Apply copper-based fungicide; Use mancozeb"},
	{"Tomato", "Septoria Leaf Spot", "Small, circular spots with dark borders on leaves", "Septoria lycopersici fungus", "Remove infected leaves; Mulch around plants; Avoid overhead watering", "Apply copper-based fungicide; Use chlorothalonil"},
	{"Tomato", "Tomato Yellow Leaf Curl Virus", "Yellowing and curling of leaves, stunted growth", "Virus transmitted by whiteflies", "Use reflective mulch; Plant resistant varieties; Control whiteflies with neem oil", "No effective chemical treatment; Use insecticides to control whiteflies"},

	{"Potato", "Bacterial Wilt", "Wilting of plants, browning of vascular tissue", "Ralstonia solanacearum bacteria", "Crop rotation; Use disease-free seed potatoes; Improve drainage", "No effective chemical control; Preventive measures are key"},
	{"Potato", "Late Blight", "Dark, water-soaked spots on leaves and stems", "Phytophthora infestans", "Remove infected plants; Improve air circulation; Apply compost tea", "Apply copper-based fungicide; Use mancozeb"},
	{"Potato", "Early Blight", "Dark brown to black lesions with concentric rings", "Alternaria solani fungus", "Crop rotation; Remove infected plants; Apply compost tea", "Apply chlorothalonil; Use azoxystrobin"},
	{"Potato", "Potato Scab", "Rough, corky patches on tuber surface", "Streptomyces scabies bacteria", "Maintain soil pH below 5.5; Use resistant varieties; Crop rotation", "No effective chemical control; Preventive measures are key"},

	{"Rice", "Blast Disease", "Diamond-shaped lesions on leaves", "Magnaporthe oryzae fungus", "Use resistant varieties; Balanced fertilization; Proper water management", "Apply azoxystrobin; Use tricyclazole"},
	{"Rice", "Bacterial Leaf Blight", "Water-soaked lesions that turn yellow to white", "Xanthomonas oryzae bacteria", "Use resistant varieties; Balanced fertilization; Proper drainage", "Apply copper-based bactericides; Use streptomycin sulfate"},
	{"Rice", "Brown Spot", "Brown lesions on leaves and glumes", "Cochliobolus miyabeanus fungus", "Balanced fertilization; Proper water management; Seed treatment", "Apply propiconazole; Use carbendazim"},
	{"Rice", "Sheath Blight", "Lesions on leaf sheaths, irregular spots on leaves", "Rhizoctonia solani fungus", "Reduce plant density; Balanced fertilization; Proper drainage", "Apply azoxystrobin; Use hexaconazole"},

	{"Wheat", "Rust", "Reddish-brown pustules on leaves and stems", "Puccinia species fungi", "Crop rotation; Remove volunteer wheat; Plant resistant varieties", "Apply propiconazole; Use tebuconazole"},
	{"Wheat", "Powdery Mildew", "White powdery growth on leaves and stems", "Blumeria graminis fungus", "Crop rotation; Proper spacing; Balanced fertilization", "Apply sulfur; Use tebuconazole"},
	{"Wheat", "Fusarium Head Blight", "Bleached spikelets on the head, pink or orange spore masses", "Fusarium graminearum fungus", "Crop rotation; Plant resistant varieties; Proper timing of harvest", "Apply metconazole; Use prothioconazole"},
	{"Wheat", "Septoria Tritici Blotch", "Irregular brown lesions on leaves", "Zymoseptoria tritici fungus", "Crop rotation; Remove crop debris; Plant resistant varieties", "Apply azoxystrobin; Use epoxiconazole"},

	{"Corn", "Corn Smut", "Galls on ears, tassels, and leaves", "Ustilago maydis fungus", "Crop rotation; Remove galls before they rupture; Plant resistant varieties", "Apply fungicides with azoxystrobin; Use propiconazole"},
	{"Corn", "Gray Leaf Spot", "Rectangular lesions on leaves", "Cercospora zeae-maydis fungus", "Crop rotation; Plant resistant varieties; Proper tillage", "Apply azoxystrobin; Use pyraclostrobin"},
	{"Corn", "Northern Corn Leaf Blight", "Long, elliptical lesions on leaves", "Exserohilum turcicum fungus", "Crop rotation; Plant resistant varieties; Remove crop debris", "Apply azoxystrobin; Use propiconazole"},
	{"Corn", "Common Rust", "Small, circular to elongated, reddish-brown pustules", "Puccinia sorghi fungus", "Plant resistant varieties; Early planting; Balanced fertilization", "Apply azoxystrobin; Use propiconazole"},

	{"Cotton", "Cotton Leaf Curl Virus", "Upward curling of leaves, thickened veins, stunted growth", "Virus transmitted by whiteflies", "Control whiteflies with neem oil; Plant resistant varieties; Early sowing", "Use insecticides to control whiteflies; No direct treatment for the virus"},
	{"Cotton", "Bacterial Blight", "Angular water-soaked lesions on leaves, black lesions on bolls", "Xanthomonas citri pv. malvacearum bacteria", "Use disease-free seeds; Crop rotation; Balanced fertilization", "Apply copper-based bactericides; Use streptomycin sulfate"},
	{"Cotton", "Fusarium Wilt", "Yellowing of leaves, wilting, vascular discoloration", "Fusarium oxysporum f. sp. vasinfectum fungus", "Crop rotation; Plant resistant varieties; Balanced fertilization", "No effective chemical control; Preventive measures are key"},

	{"Sugarcane", "Red Rot", "Red discoloration of internal tissues, withering of leaves", "Colletotrichum falcatum fungus", "Use disease-free setts; Hot water treatment of setts; Crop rotation", "Apply carbendazim; Use propiconazole"},
	{"Sugarcane", "Smut", "Black whip-like structures emerging from the growing point", "Sporisorium scitamineum fungus", "Use disease-free setts; Hot water treatment of setts; Remove and destroy infected plants", "Apply propiconazole; Use triadimefon"},
	{"Sugarcane", "Leaf Scald", "White to reddish-brown lesions with yellow halos on leaves", "Xanthomonas albilineans bacteria", "Use disease-free setts; Hot water treatment of setts; Crop rotation", "Apply copper-based bactericides; No highly effective chemical control"},

	{"Soybean", "Soybean Rust", "Small, brown to reddish-brown lesions on leaves", "Phakopsora pachyrhizi fungus", "Plant resistant varieties; Early planting; Proper spacing", "Apply azoxystrobin; Use tebuconazole"},
	{"Soybean", "Bacterial Pustule", "Small, yellow-to-brown spots with raised centers on leaves", "Xanthomonas axonopodis pv. glycines bacteria", "Crop rotation; Plant resistant varieties; Use disease-free seeds", "Apply copper-based bactericides; Limited chemical control options"},
	{"Soybean", "Frogeye Leaf Spot", "Circular to angular spots with gray centers and reddish-brown borders", "Cercospora sojina fungus", "Crop rotation; Plant resistant varieties; Proper tillage", "Apply azoxystrobin; Use difenoconazole"},

	{"Chickpea", "Ascochyta Blight", "Brown lesions on leaves, stems, and pods", "Ascochyta rabiei fungus", "Crop rotation; Use disease-free seeds; Proper spacing", "Apply azoxystrobin; Use chlorothalonil"},
	{"Chickpea", "Fusarium Wilt", "Yellowing and wilting of plants, vascular discoloration", "Fusarium oxysporum f. sp. ciceris fungus", "Crop rotation; Plant resistant varieties; Balanced fertilization", "No effective chemical control; Preventive measures are key"},
	{"Chickpea", "Root Rot", "Rotting of roots, yellowing and wilting of plants", "Various fungi including Rhizoctonia, Fusarium, and Pythium", "Crop rotation; Improve drainage; Balanced fertilization", "Apply metalaxyl; Use thiophanate-methyl"},

	{"Onion", "Purple Blotch", "Purple lesions on leaves and seed stalks", "Alternaria porri fungus", "Crop rotation; Proper spacing; Remove infected plants", "Apply azoxystrobin; Use chlorothalonil"},
	{"Onion", "Downy Mildew", "Pale green to yellow patches on leaves, grayish-purple fuzzy growth", "Peronospora destructor fungus", "Crop rotation; Proper spacing; Improve air circulation", "Apply mancozeb; Use metalaxyl"},
	{"Onion", "Neck Rot", "Water-soaked lesions on neck, white fungal growth", "Botrytis allii fungus", "Proper curing of bulbs; Avoid injury during harvest; Proper storage conditions", "Apply iprodione; Use fludioxonil"},

	{"Chili Pepper", "Anthracnose", "Sunken, circular lesions on fruits", "Colletotrichum species fungi", "Crop rotation; Proper spacing; Remove infected fruits", "Apply azoxystrobin; Use chlorothalonil"},
	{"Chili Pepper", "Bacterial Spot", "Small, water-soaked spots on leaves and fruits", "Xanthomonas campestris pv. vesicatoria bacteria", "Crop rotation; Use disease-free seeds; Avoid overhead irrigation", "Apply copper-based bactericides; Use streptomycin sulfate"},
	{"Chili Pepper", "Powdery Mildew", "White powdery growth on leaves and stems", "Leveillula taurica fungus", "Proper spacing; Improve air circulation; Apply neem oil", "Apply sulfur; Use myclobutanil"},

	{"Eggplant", "Verticillium Wilt", "Yellowing and wilting of leaves, vascular discoloration", "Verticillium dahliae fungus", "Crop rotation; Plant resistant varieties; Balanced fertilization", "No effective chemical control; Preventive measures are key"},
	{"Eggplant", "Phomopsis Blight", "Circular to irregular spots on leaves, sunken lesions on fruits", "Phomopsis vexans fungus", "Crop rotation; Remove infected plants; Use disease-free seeds", "Apply azoxystrobin; Use chlorothalonil"},
	{"Eggplant", "Little Leaf", "Stunted growth, small and narrow leaves", "Phytoplasma", "Control insect vectors; Remove infected plants; Balanced fertilization", "No effective chemical control; Use insecticides to control vectors"},

	{"Okra", "Powdery Mildew", "White powdery growth on leaves and stems", "Erysiphe cichoracearum fungus", "Proper spacing; Improve air circulation; Apply neem oil", "Apply sulfur; Use myclobutanil"},
	{"Okra", "Yellow Vein Mosaic", "Yellowing of veins, mosaic pattern on leaves", "Virus transmitted by whiteflies", "Control whiteflies with neem oil; Plant resistant varieties; Early sowing", "Use insecticides to control whiteflies; No direct treatment for the virus"},
	{"Okra", "Cercospora Leaf Spot", "Circular to irregular spots with gray centers and reddish-brown borders", "Cercospora abelmoschi fungus", "Crop rotation; Remove infected leaves; Proper spacing", "Apply azoxystrobin; Use chlorothalonil"},

	{"Cucumber", "Downy Mildew", "Yellow spots on upper leaf surface, white fuzzy growth on lower surface", "Pseudoperonospora cubensis fungus", "Crop rotation; Proper spacing; Improve air circulation", "Apply mancozeb; Use metalaxyl"},
	{"Cucumber", "Angular Leaf Spot", "Angular, water-soaked lesions on leaves", "Pseudomonas syringae pv. lachrymans bacteria", "Crop rotation; Use disease-free seeds; Avoid overhead irrigation", "Apply copper-based bactericides; Limited chemical control options"},
	{"Cucumber", "Anthracnose", "Sunken, circular lesions on fruits", "Colletotrichum orbiculare fungus", "Crop rotation; Proper spacing; Remove infected fruits", "Apply azoxystrobin; Use chlorothalonil"},

	{"Mango", "Anthracnose", "Black spots on fruits, sunken lesions", "Colletotrichum gloeosporioides fungus", "Proper pruning; Remove infected fruits; Improve air circulation", "Apply azoxystrobin; Use chlorothalonil"},
	{"Mango", "Powdery Mildew", "White powdery growth on leaves and young fruits", "Oidium mangiferae fungus", "Proper pruning; Improve air circulation; Apply neem oil", "Apply sulfur; Use myclobutanil"},
	{"Mango", "Bacterial Canker", "Black spots on leaves, cankers on twigs, gummy ooze from branches", "Xanthomonas campestris pv. mangiferaeindicae bacteria", "Proper pruning; Remove infected parts; Apply copper-based paste on cuts", "Apply copper-based bactericides; Use streptomycin sulfate"},

	{"Banana", "Panama Disease", "Yellowing and wilting of leaves, vascular discoloration", "Fusarium oxysporum f. sp. cubense fungus", "Plant resistant varieties; Improve drainage; Avoid infected areas", "No effective chemical control; Preventive measures are key"},
	{"Banana", "Black Sigatoka", "Black streaks and spots on leaves", "Mycosphaerella fijiensis fungus", "Remove infected leaves; Improve air circulation; Balanced fertilization", "Apply propiconazole; Use mancozeb"},
	{"Banana", "Banana Bunchy Top", "Stunted growth, bunchy appearance of leaves", "Banana bunchy top virus", "Control aphid vectors; Remove infected plants; Use disease-free planting material", "No effective chemical control; Use insecticides to control vectors"},

	{"Coconut", "Bud Rot", "Rotting of the bud, wilting of young leaves", "Phytophthora palmivora fungus", "Improve drainage; Balanced fertilization; Apply Trichoderma", "Apply metalaxyl; Use fosetyl-aluminum"},
	{"Coconut", "Lethal Yellowing", "Yellowing of leaves, premature nut fall", "Phytoplasma", "Control insect vectors; Remove infected plants; Plant resistant varieties", "No effective chemical control; Use insecticides to control vectors"},
	{"Coconut", "Stem Bleeding", "Reddish-brown liquid oozing from cracks in the stem", "Thielaviopsis paradoxa fungus", "Avoid injury to the stem; Apply Trichoderma; Balanced fertilization", "Apply carbendazim; Use thiophanate-methyl"},

	{"Groundnut", "Early Leaf Spot", "Circular brown spots with yellow halos on leaves", "Cercospora arachidicola fungus", "Crop rotation; Remove crop debris; Balanced fertilization", "Apply chlorothalonil; Use tebuconazole"},
	{"Groundnut", "Late Leaf Spot", "Dark brown to black circular spots on leaves", "Phaeoisariopsis personata fungus", "Crop rotation; Remove crop debris; Balanced fertilization", "Apply chlorothalonil; Use tebuconazole"},
	{"Groundnut", "Groundnut Rosette", "Stunted growth, chlorotic rosette appearance", "Groundnut rosette virus", "Control aphid vectors; Early planting; Plant resistant varieties", "No effective chemical control; Use insecticides to control vectors"},

	{"Mustard", "White Rust", "White pustules on leaves and stems", "Albugo candida fungus", "Crop rotation; Remove infected plants; Proper spacing", "Apply mancozeb; Use metalaxyl"},
	{"Mustard", "Alternaria Blight", "Dark brown to black spots on leaves and pods", "Alternaria brassicae fungus", "Crop rotation; Remove infected plants; Use disease-free seeds", "Apply azoxystrobin; Use mancozeb"},
	{"Mustard", "Downy Mildew", "Yellow spots on upper leaf surface, white fuzzy growth on lower surface", "Hyaloperonospora parasitica fungus", "Crop rotation; Proper spacing; Improve air circulation", "Apply mancozeb; Use metalaxyl"},

	{"Turmeric", "Leaf Spot", "Brown to black spots on leaves", "Colletotrichum capsici fungus", "Crop rotation; Remove infected leaves; Balanced fertilization", "Apply azoxystrobin; Use chlorothalonil"},
	{"Turmeric", "Rhizome Rot", "Yellowing and wilting of leaves, soft rot of rhizomes", "Pythium aphanidermatum fungus", "Improve drainage; Crop rotation; Use disease-free rhizomes", "Apply metalaxyl; Use fosetyl-aluminum"},
	{"Turmeric", "Bacterial Wilt", "Wilting of plants, vascular discoloration", "Ralstonia solanacearum bacteria", "Crop rotation; Improve drainage; Use disease-free rhizomes", "No effective chemical control; Preventive measures are key"},
}
