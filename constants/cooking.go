package constants

// CookingMethods maps the method key stored on a user to its display name.
var CookingMethods = map[string]string{
	"stovetop":    "Stovetop/Pan",
	"oven":        "Oven",
	"microwave":   "Microwave",
	"air_fryer":   "Air Fryer",
	"grill":       "Grill",
	"slow_cooker": "Slow Cooker",
}

// KitchenTools maps the tool key stored on a user to its display name.
var KitchenTools = map[string]string{
	"mixer":           "Stand/Hand Mixer",
	"blender":         "Blender",
	"food_processor":  "Food Processor",
	"mandolin":        "Mandolin",
	"pressure_cooker": "Pressure Cooker",
	"thermometer":     "Kitchen Thermometer",
	"scale":           "Kitchen Scale",
}

// CookingMethodNames resolves stored method keys to display names, dropping
// unknown keys.
func CookingMethodNames(keys []string) []string {
	var names []string
	for _, k := range keys {
		if name, ok := CookingMethods[k]; ok {
			names = append(names, name)
		}
	}
	return names
}

// KitchenToolNames resolves stored tool keys to display names, dropping
// unknown keys.
func KitchenToolNames(keys []string) []string {
	var names []string
	for _, k := range keys {
		if name, ok := KitchenTools[k]; ok {
			names = append(names, name)
		}
	}
	return names
}
