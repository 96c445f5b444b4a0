package catalog

import (
	"github.com/notargets/goreactor/types"
)

var (
	spaceTime  = []types.Axis{types.AxisTime, types.AxisAxial, types.AxisAssembly}
	groupWise  = []types.Axis{types.AxisTime, types.AxisAxial, types.AxisAssembly, types.AxisGroup}
	precWise   = []types.Axis{types.AxisTime, types.AxisAxial, types.AxisAssembly, types.AxisPrecursor}
	scattering = []types.Axis{types.AxisTime, types.AxisAxial, types.AxisAssembly,
		types.AxisGroup, types.AxisSecondaryGroup}
)

func integral(module types.Module, group, name, unit string) Entry {
	return Entry{
		Name:     name,
		Category: types.Integral,
		Module:   module,
		Group:    group,
		Axes:     []types.Axis{types.AxisTime},
		Unit:     unit,
	}
}

func template(module types.Module, group, name, unit string, kind TemplateKind) (e Entry) {
	e = integral(module, group, name, unit)
	e.Template = kind
	return
}

func distributed(module types.Module, name, unit, description string, axes []types.Axis) Entry {
	return Entry{
		Name:        name,
		Category:    types.Distributed,
		Module:      module,
		Group:       DistributionsGroup,
		Axes:        append([]types.Axis{}, axes...),
		Unit:        unit,
		Description: description,
	}
}

// defaultEntries builds a fresh copy of the quantity tables for every catalog, so that two
// archives with different group counts never share expanded entries
func defaultEntries() []Entry {
	return []Entry{
		integral(types.NE, "power", "power", "W"),
		integral(types.NE, "power", "powerfiss", "W"),
		integral(types.NE, "power", "powerdec", "W"),
		integral(types.NE, "reactivity", "reactivity", "pcm"),
		template(types.NE, "reactivity", "betaeff(", "pcm", PrecursorTemplate),
		integral(types.NE, "kinetics", "lambda", "s"),
		template(types.NE, "kinetics", "ceff(", "-", PrecursorTemplate),
		template(types.NE, "flux", "gro=", "1/cm^2/s", GroupTemplate),
		integral(types.TH, "thermohydraulics", "tfuelmax", "K"),
		integral(types.TH, "thermohydraulics", "tcladmax", "K"),
		integral(types.TH, "thermohydraulics", "tcoolout", "K"),
		integral(types.TH, "thermohydraulics", "mflow", "kg/s"),

		distributed(types.NE, "powertot", "W", "total power", spaceTime),
		distributed(types.NE, "pfiss", "W", "fission power", spaceTime),
		distributed(types.NE, "fluxgr", "1/cm^2/s", "neutron flux per energy group", groupWise),
		distributed(types.NE, "adjflux", "a.u.", "adjoint flux per energy group", groupWise),
		distributed(types.NE, "prec", "1/cm^3", "precursor concentration per family", precWise),
		distributed(types.NE, "xsscat", "1/cm", "group to group scattering cross section", scattering),
		distributed(types.NE, "dhprec", "W/cm^3", "decay heat per decay heat family", precWise),
		distributed(types.TH, "tfuel", "K", "fuel temperature", spaceTime),
		distributed(types.TH, "tclad", "K", "cladding temperature", spaceTime),
		distributed(types.TH, "tcool", "K", "coolant temperature", spaceTime),
		distributed(types.TH, "rhocool", "kg/m^3", "coolant density", spaceTime),
		distributed(types.TH, "velcool", "m/s", "coolant velocity", spaceTime),
		distributed(types.TH, "pcool", "Pa", "coolant pressure", spaceTime),
	}
}
