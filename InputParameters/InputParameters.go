package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/notargets/goreactor/coremap"
	"github.com/notargets/goreactor/types"
)

// Core description (CI section)
type CoreInput struct {
	Shape string  `json:"shape"`
	TEnd  float64 `json:"tEnd"`
	NProf int     `json:"nProf"`
	Pitch float64 `json:"pitch"`
	Power float64 `json:"power"`
	Trans bool    `json:"trans"`
}

// Neutronics section: lattice layout file, assembly type names and configuration changes
type NeutronicsInput struct {
	Filename      string                      `json:"filename"`
	AssemblyNames []string                    `json:"assemblynames"`
	Rotation      float64                     `json:"rotation"`
	AssemblyLabel []string                    `json:"assemblylabel"`
	Replace       map[string][]int            `json:"replace"` // assembly name -> positions
	Config        map[string]map[string][]int `json:"config"`  // time -> assembly name -> positions
	Cuts          []float64                   `json:"cuts"`
	MyCuts        []float64                   `json:"mycuts"`
	SplitZ        []float64                   `json:"splitz"`
	Fren          bool                        `json:"fren"` // positions are in alternate numbering
	RegionsPlot   bool                        `json:"regionsplot"`
	NEData        map[string]interface{}      `json:"NEdata"`
}

// Thermal-hydraulics section
type ThermalInput struct {
	CoolingZonesFile   string                 `json:"coolingzonesfile"`
	MassFlowRates      []float64              `json:"massflowrates"`
	Temperatures       []float64              `json:"temperatures"`
	Pressures          []float64              `json:"pressures"`
	CoolingZoneNames   []string               `json:"coolingzonenames"`
	Rotation           *float64               `json:"rotation"`
	Fren               bool                   `json:"fren"`
	THData             map[string]interface{} `json:"THdata"`
	Replace            map[string][]int       `json:"replace"`
	BoundaryConditions map[string]interface{} `json:"boundaryconditions"`
}

// Parameters obtained from the JSON (or YAML) input file
type InputParameters struct {
	CI  *CoreInput       `json:"CI"`
	NE  *NeutronicsInput `json:"NE"`
	TH  *ThermalInput    `json:"TH"`
	Dir string           `json:"-"` // relative file names resolve against it
}

var mandatory = map[string][]string{
	"CI": {"shape"},
	"NE": {"filename", "assemblynames", "rotation"},
	"TH": {"coolingzonesfile", "massflowrates", "temperatures", "pressures", "coolingzonenames"},
}

func ReadInputParameters(filename string, verbose bool) (ip *InputParameters, err error) {
	var (
		data []byte
	)
	if verbose {
		fmt.Printf("Reading input file named: %s\n", filename)
	}
	if data, err = os.ReadFile(filename); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%s: %w", filename, types.ErrMissingFile)
		}
		return
	}
	ip = &InputParameters{Dir: filepath.Dir(filename)}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}

/*
Parse reads the CI section and, when present, the NE and TH sections. Missing mandatory keys
are configuration errors naming SECTION.key; missing optional keys take their defaults.
*/
func (ip *InputParameters) Parse(data []byte) (err error) {
	var (
		raw map[string]map[string]interface{}
	)
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%v: %w", err, types.ErrConfig)
	}
	if _, ok := raw["CI"]; !ok {
		return fmt.Errorf("missing section CI: %w", types.ErrConfig)
	}
	for _, section := range []string{"CI", "NE", "TH"} {
		keys, present := raw[section]
		if !present {
			continue
		}
		for _, key := range mandatory[section] {
			if _, ok := keys[key]; !ok {
				return fmt.Errorf("missing mandatory key %s.%s: %w", section, key, types.ErrConfig)
			}
		}
	}
	ip.CI = &CoreInput{NProf: 1, Pitch: 1, Power: 1}
	if _, ok := raw["NE"]; ok {
		ip.NE = &NeutronicsInput{}
	}
	if _, ok := raw["TH"]; ok {
		ip.TH = &ThermalInput{}
	}
	if err = yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("%v: %w", err, types.ErrConfig)
	}
	return ip.applyDefaults()
}

func (ip *InputParameters) applyDefaults() (err error) {
	if _, err = ip.CI.LatticeShape(); err != nil {
		return
	}
	if !(ip.CI.Pitch > 0) {
		return fmt.Errorf("CI.pitch must be positive, have %v: %w", ip.CI.Pitch, types.ErrConfig)
	}
	if ne := ip.NE; ne != nil {
		if len(ne.AssemblyLabel) == 0 {
			ne.AssemblyLabel = ne.AssemblyNames
		}
		if ne.MyCuts != nil {
			ne.Cuts = ne.MyCuts
		}
	}
	if th := ip.TH; th != nil && th.Rotation == nil {
		var rotation float64
		if ip.NE != nil {
			rotation = ip.NE.Rotation
		}
		th.Rotation = &rotation
	}
	return
}

func (ci *CoreInput) LatticeShape() (types.LatticeShape, error) {
	return types.NewLatticeShape(ci.Shape)
}

// Convention is the numbering the replace and config positions are written in
func (ne *NeutronicsInput) Convention() types.Convention {
	if ne.Fren {
		return types.Alternate
	}
	return types.Native
}

// TypeCode is the lattice type code of an assembly name, its 1-based place in assemblynames
func (ne *NeutronicsInput) TypeCode(name string) (code int, err error) {
	for i, n := range ne.AssemblyNames {
		if n == name {
			return i + 1, nil
		}
	}
	err = fmt.Errorf("assembly name [%s] is not in NE.assemblynames: %w", name, types.ErrConfig)
	return
}

// Label is the display label of a type code
func (ne *NeutronicsInput) Label(code int) string {
	if code < 1 || code > len(ne.AssemblyLabel) {
		return ""
	}
	return ne.AssemblyLabel[code-1]
}

func (ne *NeutronicsInput) codes(replace map[string][]int) (byCode map[int][]int, err error) {
	byCode = make(map[int][]int)
	for name, positions := range replace {
		var code int
		if code, err = ne.TypeCode(name); err != nil {
			return nil, err
		}
		byCode[code] = append(byCode[code], positions...)
	}
	return
}

type timedReplace struct {
	time    float64
	replace map[string][]int
}

func (ne *NeutronicsInput) configTimes() (steps []timedReplace, err error) {
	for key, replace := range ne.Config {
		var t float64
		if t, err = strconv.ParseFloat(key, 64); err != nil {
			return nil, fmt.Errorf("NE.config time [%s]: %w", key, types.ErrConfig)
		}
		steps = append(steps, timedReplace{time: t, replace: replace})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].time < steps[j].time })
	return
}

/*
BuildCoreMap reads the NE layout file, applies the replacements, builds the core map with the CI
pitch and the NE rotation, then appends the time indexed configurations.
*/
func (ip *InputParameters) BuildCoreMap(verbose bool) (cm *coremap.CoreMap, err error) {
	var (
		lay   coremap.Layout
		shape types.LatticeShape
		steps []timedReplace
	)
	if ip.NE == nil {
		return nil, fmt.Errorf("missing section NE: %w", types.ErrConfig)
	}
	ne := ip.NE
	filename := ne.Filename
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(ip.Dir, filename)
	}
	if lay, err = coremap.ReadLayoutFile(filename, verbose); err != nil {
		return
	}
	if shape, err = ip.CI.LatticeShape(); err != nil {
		return
	}
	if lay.Shape != shape {
		return nil, fmt.Errorf("layout %s is %s, CI.shape is %s: %w", filename, lay.Shape, shape, types.ErrConfig)
	}
	for _, code := range lay.Types {
		if code > len(ne.AssemblyNames) {
			return nil, fmt.Errorf("layout type %d has no name in NE.assemblynames: %w", code, types.ErrConfig)
		}
	}
	var replace map[int][]int
	if replace, err = ne.codes(ne.Replace); err != nil {
		return
	}
	if ne.Convention() == types.Alternate {
		lay.Replace = replace
	}
	if cm, err = coremap.Build(lay, ip.CI.Pitch, ne.Rotation); err != nil {
		return nil, err
	}
	if ne.Convention() == types.Native {
		// native positions only exist once the map is built
		for _, code := range sortedCodes(replace) {
			if err = cm.LoadAssembly(code, replace[code], types.Native); err != nil {
				return nil, err
			}
		}
	}
	if steps, err = ne.configTimes(); err != nil {
		return nil, err
	}
	for _, step := range steps {
		var byCode map[int][]int
		if byCode, err = ne.codes(step.replace); err != nil {
			return nil, err
		}
		if _, err = cm.AddConfiguration(step.time, byCode, ne.Convention()); err != nil {
			return nil, err
		}
	}
	if verbose {
		fmt.Printf("Core map: %d assemblies, %d configurations\n", cm.NumAssemblies(), cm.NumSteps())
	}
	return
}

func sortedCodes(m map[int][]int) (codes []int) {
	for code := range m {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("[%s]\t\t\t= Lattice Shape\n", ip.CI.Shape)
	fmt.Printf("%8.5f\t\t= Pitch\n", ip.CI.Pitch)
	fmt.Printf("%8.5f\t\t= Power\n", ip.CI.Power)
	fmt.Printf("%8.5f\t\t= Final Time\n", ip.CI.TEnd)
	fmt.Printf("[%d]\t\t\t\t= Profiles\n", ip.CI.NProf)
	fmt.Printf("[%v]\t\t\t= Transient\n", ip.CI.Trans)
	if ne := ip.NE; ne != nil {
		fmt.Printf("\"%s\"\t= NE Layout\n", ne.Filename)
		fmt.Printf("%8.5f\t\t= NE Rotation\n", ne.Rotation)
		for i, name := range ne.AssemblyNames {
			fmt.Printf("Assembly[%d] = %s (%s)\n", i+1, name, ne.Label(i+1))
		}
		if len(ne.Cuts) != 0 {
			fmt.Printf("Cuts = %v\n", ne.Cuts)
		}
		keys := make([]string, 0, len(ne.Replace))
		for k := range ne.Replace {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("Replace[%s] = %v\n", key, ne.Replace[key])
		}
	}
	if th := ip.TH; th != nil {
		fmt.Printf("\"%s\"\t= TH Cooling Zones\n", th.CoolingZonesFile)
		fmt.Printf("%8.5f\t\t= TH Rotation\n", *th.Rotation)
		for i, name := range th.CoolingZoneNames {
			var mdot, temp, press float64
			if i < len(th.MassFlowRates) {
				mdot = th.MassFlowRates[i]
			}
			if i < len(th.Temperatures) {
				temp = th.Temperatures[i]
			}
			if i < len(th.Pressures) {
				press = th.Pressures[i]
			}
			fmt.Printf("Zone[%s] = %g kg/s, %g K, %g Pa\n", name, mdot, temp, press)
		}
	}
}
