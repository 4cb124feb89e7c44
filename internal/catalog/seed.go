package catalog

import "github.com/prasad/rfp-pilot/internal/types"

// SeedEntries returns the demo product catalog: two cable products plus
// three service offerings.
func SeedEntries() []types.CatalogEntry {
	return []types.CatalogEntry{
		{
			SKU:      "CABLE-HV-001",
			Name:     "11kV XLPE Power Cable 3C x 300sqmm",
			Details:  "High Tension aluminum cable, XLPE insulation, galvanized steel strip armour. Voltage: 11kV.",
			Category: types.CategoryCable,
			Price:    4500,
			Specs: map[string]string{
				"voltage":    "11kV",
				"insulation": "XLPE",
				"cores":      "3",
				"armouring":  "Strip",
			},
		},
		{
			SKU:      "CABLE-LV-002",
			Name:     "1.1kV PVC Control Cable 12C x 1.5sqmm",
			Details:  "Low Voltage copper control cable, PVC insulated, unarmoured. Voltage: 1.1kV.",
			Category: types.CategoryCable,
			Price:    850,
			Specs: map[string]string{
				"voltage":    "1.1kV",
				"insulation": "PVC",
				"cores":      "12",
				"armouring":  "Unarmoured",
			},
		},
		{
			SKU:      "SVC-CLOUD-001",
			Name:     "Enterprise Cloud Hosting & Managed Services",
			Details:  "Secure cloud hosting on AWS/Azure, inclusive of 24/7 monitoring, OS patching, and uptime SLA 99.9%.",
			Category: types.CategoryService,
			Price:    12000,
			Specs: map[string]string{
				"type":     "Cloud",
				"sla":      "99.9%",
				"platform": "AWS/Azure",
			},
		},
		{
			SKU:      "SVC-DEV-002",
			Name:     "Custom Portal Development",
			Details:  "Software development services for web portals, e-RCS systems, and dashboard customization.",
			Category: types.CategoryService,
			Price:    25000,
			Specs: map[string]string{
				"type":          "Development",
				"domain":        "Web Portal",
				"customization": "Yes",
			},
		},
		{
			SKU:      "SVC-AMC-003",
			Name:     "Annual Maintenance Contract (AMC) - Software",
			Details:  "Post-deployment maintenance, bug fixes, and minor enhancements for 1 year.",
			Category: types.CategoryService,
			Price:    5000,
			Specs: map[string]string{
				"type":     "Support",
				"duration": "1 Year",
				"coverage": "Bug Fixes",
			},
		},
	}
}
