package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Static catalog used when the relational store is empty or
// unreachable. IDs are fixed so repeated fallback runs stay stable
// within a deployment and so diagnoses recorded against fallback data
// reference consistent values.

var (
	fallbackTomatoID    = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a01")
	fallbackPotatoID    = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a02")
	fallbackRiceID      = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a03")
	fallbackWheatID     = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a04")
	fallbackCornID      = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a05")
	fallbackCottonID    = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a06")
	fallbackSugarcaneID = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a07")
	fallbackSoybeanID   = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a08")
	fallbackChickpeaID  = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a09")
	fallbackOnionID     = uuid.MustParse("1f0a2b64-8c3d-4e5f-9a1b-2c3d4e5f6a10")
)

// FallbackCrops returns the built-in crop list.
func FallbackCrops() []Crop {
	return []Crop{
		{ID: fallbackTomatoID, Name: "Tomato", ScientificName: "Solanum lycopersicum", Description: "Common garden vegetable with red fruits", ImageURL: "/images/crops/tomato.jpg"},
		{ID: fallbackPotatoID, Name: "Potato", ScientificName: "Solanum tuberosum", Description: "Root vegetable and a staple food", ImageURL: "/images/crops/potato.jpg"},
		{ID: fallbackRiceID, Name: "Rice", ScientificName: "Oryza sativa", Description: "Staple food for more than half of the world population", ImageURL: "/images/crops/rice.jpg"},
		{ID: fallbackWheatID, Name: "Wheat", ScientificName: "Triticum aestivum", Description: "Cereal grain cultivated worldwide", ImageURL: "/images/crops/wheat.jpg"},
		{ID: fallbackCornID, Name: "Corn", ScientificName: "Zea mays", Description: "Cereal grain domesticated in Mesoamerica", ImageURL: "/images/crops/corn.jpg"},
		{ID: fallbackCottonID, Name: "Cotton", ScientificName: "Gossypium hirsutum", Description: "Soft, fluffy staple fiber that grows in a boll", ImageURL: "/images/crops/cotton.jpg"},
		{ID: fallbackSugarcaneID, Name: "Sugarcane", ScientificName: "Saccharum officinarum", Description: "Tall perennial grass used for sugar production", ImageURL: "/images/crops/sugarcane.jpg"},
		{ID: fallbackSoybeanID, Name: "Soybean", ScientificName: "Glycine max", Description: "Legume species native to East Asia", ImageURL: "/images/crops/soybean.jpg"},
		{ID: fallbackChickpeaID, Name: "Chickpea", ScientificName: "Cicer arietinum", Description: "Annual legume of the family Fabaceae", ImageURL: "/images/crops/chickpea.jpg"},
		{ID: fallbackOnionID, Name: "Onion", ScientificName: "Allium cepa", Description: "Vegetable that is the most widely cultivated species of the genus Allium", ImageURL: "/images/crops/onion.jpg"},
	}
}

func fallbackDiseases() []Disease {
	return []Disease{
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b01"), CropID: fallbackTomatoID, Name: "Early Blight", Symptoms: "Brown spots with concentric rings on leaves", Causes: "Alternaria solani fungus", Prevention: "Proper spacing, crop rotation", OrganicTreatment: "Remove infected leaves; Apply neem oil; Crop rotation", ChemicalTreatment: "Apply copper-based fungicide; Use chlorothalonil"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b02"), CropID: fallbackTomatoID, Name: "Late Blight", Symptoms: "Water-soaked spots on leaves, white fuzzy growth", Causes: "Phytophthora infestans", Prevention: "Proper spacing, avoid overhead watering", OrganicTreatment: "Remove infected plants; Improve air circulation; Apply compost tea", ChemicalTreatment: "Apply copper-based fungicide; Use mancozeb"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b03"), CropID: fallbackTomatoID, Name: "Septoria Leaf Spot", Symptoms: "Small, circular spots with dark borders on leaves", Causes: "Septoria lycopersici fungus", Prevention: "Crop rotation, avoid overhead watering", OrganicTreatment: "Remove infected leaves; Mulch around plants; Avoid overhead watering", ChemicalTreatment: "Apply copper-based fungicide; Use chlorothalonil"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b04"), CropID: fallbackPotatoID, Name: "Bacterial Wilt", Symptoms: "Wilting of plants, browning of vascular tissue", Causes: "Ralstonia solanacearum bacteria", Prevention: "Use disease-free seed potatoes", OrganicTreatment: "Crop rotation; Use disease-free seed potatoes; Improve drainage", ChemicalTreatment: "No effective chemical control; Preventive measures are key"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b05"), CropID: fallbackPotatoID, Name: "Late Blight", Symptoms: "Dark, water-soaked spots on leaves and stems", Causes: "Phytophthora infestans", Prevention: "Proper spacing, avoid overhead watering", OrganicTreatment: "Remove infected plants; Improve air circulation; Apply compost tea", ChemicalTreatment: "Apply copper-based fungicide; Use mancozeb"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b06"), CropID: fallbackRiceID, Name: "Blast Disease", Symptoms: "Diamond-shaped lesions on leaves", Causes: "Magnaporthe oryzae fungus", Prevention: "Use resistant varieties", OrganicTreatment: "Use resistant varieties; Balanced fertilization; Proper water management", ChemicalTreatment: "Apply azoxystrobin; Use tricyclazole"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b07"), CropID: fallbackRiceID, Name: "Bacterial Leaf Blight", Symptoms: "Water-soaked lesions that turn yellow to white", Causes: "Xanthomonas oryzae bacteria", Prevention: "Use resistant varieties, proper drainage", OrganicTreatment: "Use resistant varieties; Balanced fertilization; Proper drainage", ChemicalTreatment: "Apply copper-based bactericides; Use streptomycin sulfate"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b08"), CropID: fallbackWheatID, Name: "Rust", Symptoms: "Reddish-brown pustules on leaves and stems", Causes: "Puccinia species fungi", Prevention: "Plant resistant varieties", OrganicTreatment: "Crop rotation; Remove volunteer wheat; Plant resistant varieties", ChemicalTreatment: "Apply propiconazole; Use tebuconazole"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b09"), CropID: fallbackWheatID, Name: "Powdery Mildew", Symptoms: "White powdery growth on leaves and stems", Causes: "Blumeria graminis fungus", Prevention: "Proper spacing, balanced fertilization", OrganicTreatment: "Crop rotation; Proper spacing; Balanced fertilization", ChemicalTreatment: "Apply sulfur; Use tebuconazole"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b10"), CropID: fallbackCornID, Name: "Corn Smut", Symptoms: "Galls on ears, tassels, and leaves", Causes: "Ustilago maydis fungus", Prevention: "Plant resistant varieties", OrganicTreatment: "Crop rotation; Remove galls before they rupture; Plant resistant varieties", ChemicalTreatment: "Apply fungicides with azoxystrobin; Use propiconazole"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b11"), CropID: fallbackCornID, Name: "Gray Leaf Spot", Symptoms: "Rectangular lesions on leaves", Causes: "Cercospora zeae-maydis fungus", Prevention: "Crop rotation, proper tillage", OrganicTreatment: "Crop rotation; Plant resistant varieties; Proper tillage", ChemicalTreatment: "Apply azoxystrobin; Use pyraclostrobin"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b12"), CropID: fallbackCottonID, Name: "Cotton Leaf Curl Virus", Symptoms: "Upward curling of leaves, thickened veins, stunted growth", Causes: "Virus transmitted by whiteflies", Prevention: "Control whiteflies, early sowing", OrganicTreatment: "Control whiteflies with neem oil; Plant resistant varieties; Early sowing", ChemicalTreatment: "Use insecticides to control whiteflies; No direct treatment for the virus"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b13"), CropID: fallbackSugarcaneID, Name: "Red Rot", Symptoms: "Red discoloration of internal tissues, withering of leaves", Causes: "Colletotrichum falcatum fungus", Prevention: "Use disease-free setts, hot water treatment", OrganicTreatment: "Use disease-free setts; Hot water treatment of setts; Crop rotation", ChemicalTreatment: "Apply carbendazim; Use propiconazole"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b14"), CropID: fallbackSoybeanID, Name: "Soybean Rust", Symptoms: "Small, brown to reddish-brown lesions on leaves", Causes: "Phakopsora pachyrhizi fungus", Prevention: "Early planting, proper spacing", OrganicTreatment: "Plant resistant varieties; Early planting; Proper spacing", ChemicalTreatment: "Apply azoxystrobin; Use tebuconazole"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b15"), CropID: fallbackChickpeaID, Name: "Ascochyta Blight", Symptoms: "Brown lesions on leaves, stems, and pods", Causes: "Ascochyta rabiei fungus", Prevention: "Use disease-free seeds, proper spacing", OrganicTreatment: "Crop rotation; Use disease-free seeds; Proper spacing", ChemicalTreatment: "Apply azoxystrobin; Use chlorothalonil"},
		{ID: uuid.MustParse("2d1b3c75-9d4e-4f60-8b2c-3d4e5f6a7b16"), CropID: fallbackOnionID, Name: "Purple Blotch", Symptoms: "Purple lesions on leaves and seed stalks", Causes: "Alternaria porri fungus", Prevention: "Proper spacing, remove infected plants", OrganicTreatment: "Crop rotation; Proper spacing; Remove infected plants", ChemicalTreatment: "Apply azoxystrobin; Use chlorothalonil"},
	}
}

// FallbackDiseases returns the built-in disease list for a crop,
// matched by id or by name when the crop came from model output
// rather than the store. When nothing matches it returns a single
// generic record, so the result is never empty.
func FallbackDiseases(cropID uuid.UUID, cropName string) []Disease {
	var out []Disease
	for _, d := range fallbackDiseases() {
		if d.CropID == cropID {
			out = append(out, d)
		}
	}
	if len(out) == 0 && cropName != "" {
		crops := FallbackCrops()
		for _, c := range crops {
			if strings.EqualFold(c.Name, cropName) {
				for _, d := range fallbackDiseases() {
					if d.CropID == c.ID {
						out = append(out, d)
					}
				}
				break
			}
		}
	}
	if len(out) == 0 {
		out = []Disease{NewUnknownDisease(cropID)}
	}
	return out
}

// NewUnknownDisease synthesizes the generic record used when no
// catalog tier produced a candidate. It carries the nil UUID like all
// synthetic records.
func NewUnknownDisease(cropID uuid.UUID) Disease {
	return Disease{
		ID:                uuid.Nil,
		CropID:            cropID,
		Name:              "Unknown Disease",
		Symptoms:          "Various symptoms",
		Causes:            "Various causes",
		Prevention:        "General prevention measures",
		OrganicTreatment:  "Apply neem oil; Use organic compost; Remove affected leaves",
		ChemicalTreatment: "Apply fungicide; Use appropriate pesticides",
	}
}
