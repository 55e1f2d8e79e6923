package domain

import "fmt"

// Coastal areas covered by BMS/BMR bulletins, keyed by region then zone.
// Region 1 is the Channel and Atlantic coast, region 2 the Mediterranean.
var coastalZones = map[uint8]map[uint8]string{
	1: {
		1: "Frontière belge - Baie de Somme",
		2: "Baie de Somme - La Hague",
		3: "La Hague - Penmarc'h",
		4: "Penmarc'h - Aiguillon",
		5: "Aiguillon - Frontière espagnole",
	},
	2: {
		1: "Frontière espagnole - Port Camargue",
		2: "Port Camargue - Saint Raphaël",
		3: "Saint Raphaël - Menton",
		4: "Corse",
	},
}

// CoastalZone returns the area name for a region and zone, or an error if the
// pair is not served.
func CoastalZone(region, zone uint8) (string, error) {
	zones, ok := coastalZones[region]
	if !ok {
		return "", fmt.Errorf("unknown region %d (expected 1 or 2)", region)
	}
	name, ok := zones[zone]
	if !ok {
		return "", fmt.Errorf("unknown zone %d for region %d (expected 1-%d)", zone, region, len(zones))
	}
	return name, nil
}

// ReportDomain builds the report domain identifier, e.g. "BMSCOTE-01-04".
func ReportDomain(kind ReportKind, region, zone uint8) string {
	return fmt.Sprintf("%sCOTE-%02d-%02d", kind, region, zone)
}
