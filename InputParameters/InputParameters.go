package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"gopkg.in/ini.v1"
)

// Parameters for the advection scenarios: every combination of NodeCounts,
// Ratios and Speeds is run.
type AdvectionParameters struct {
	XMin       float64   `json:"XMin"`
	XMax       float64   `json:"XMax"`
	TMin       float64   `json:"TMin"`
	TMax       float64   `json:"TMax"`
	High       float64   `json:"High"`
	Low        float64   `json:"Low"`
	NodeCounts []int     `json:"NodeCounts"`
	Ratios     []float64 `json:"Ratios"`
	Speeds     []float64 `json:"Speeds"`
}

type BVPParameters struct {
	Y0        float64 `json:"Y0"`
	Y1        float64 `json:"Y1"`
	NodeCount int     `json:"NodeCount"`
}

// Parameters obtained from a YAML or INI input file
type InputParameters struct {
	Title     string              `json:"Title"`
	Advection AdvectionParameters `json:"Advection"`
	BVP       BVPParameters       `json:"BVP"`
}

// Default holds the reference scenarios.
func Default() *InputParameters {
	return &InputParameters{
		Title: "Reference",
		Advection: AdvectionParameters{
			XMin: -10, XMax: 10,
			TMin: 0, TMax: 1,
			High: 3, Low: 1,
			NodeCounts: []int{11, 101},
			Ratios:     []float64{0.25, 0.5, 1, 1.25},
			Speeds:     []float64{5},
		},
		BVP: BVPParameters{
			Y0:        0,
			Y1:        0,
			NodeCount: 1001,
		},
	}
}

// Parse reads YAML over the receiver, keys missing from data keep their values.
func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ParseINI reads the [Advection] and [BVP] sections; list values are comma
// separated. Keys missing from data keep their values.
func (ip *InputParameters) ParseINI(data []byte) (err error) {
	var (
		file *ini.File
	)
	if file, err = ini.Load(data); err != nil {
		return
	}
	ip.Title = file.Section("").Key("Title").MustString(ip.Title)
	adv := file.Section("Advection")
	ip.Advection.XMin = adv.Key("XMin").MustFloat64(ip.Advection.XMin)
	ip.Advection.XMax = adv.Key("XMax").MustFloat64(ip.Advection.XMax)
	ip.Advection.TMin = adv.Key("TMin").MustFloat64(ip.Advection.TMin)
	ip.Advection.TMax = adv.Key("TMax").MustFloat64(ip.Advection.TMax)
	ip.Advection.High = adv.Key("High").MustFloat64(ip.Advection.High)
	ip.Advection.Low = adv.Key("Low").MustFloat64(ip.Advection.Low)
	if adv.HasKey("NodeCounts") {
		if ip.Advection.NodeCounts, err = adv.Key("NodeCounts").StrictInts(","); err != nil {
			return
		}
	}
	if adv.HasKey("Ratios") {
		if ip.Advection.Ratios, err = adv.Key("Ratios").StrictFloat64s(","); err != nil {
			return
		}
	}
	if adv.HasKey("Speeds") {
		if ip.Advection.Speeds, err = adv.Key("Speeds").StrictFloat64s(","); err != nil {
			return
		}
	}
	bvp := file.Section("BVP")
	ip.BVP.Y0 = bvp.Key("Y0").MustFloat64(ip.BVP.Y0)
	ip.BVP.Y1 = bvp.Key("Y1").MustFloat64(ip.BVP.Y1)
	ip.BVP.NodeCount = bvp.Key("NodeCount").MustInt(ip.BVP.NodeCount)
	return
}

// Load reads a parameter file over the defaults, the format is chosen by the
// file extension (.ini, otherwise YAML).
func Load(fileName string) (ip *InputParameters, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = Default()
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ini":
		err = ip.ParseINI(data)
	default:
		err = ip.Parse(data)
	}
	if err != nil {
		ip = nil
		err = fmt.Errorf("reading input parameters from %s: %w", fileName, err)
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%8.3f,%8.3f]\t= X Range\n", ip.Advection.XMin, ip.Advection.XMax)
	fmt.Printf("[%8.3f,%8.3f]\t= T Range\n", ip.Advection.TMin, ip.Advection.TMax)
	fmt.Printf("%8.3f,%8.3f\t= Shelf High, Low\n", ip.Advection.High, ip.Advection.Low)
	fmt.Printf("%v\t\t\t= Node Counts\n", ip.Advection.NodeCounts)
	fmt.Printf("%v\t= Stability Ratios\n", ip.Advection.Ratios)
	fmt.Printf("%v\t\t\t\t= Wave Speeds\n", ip.Advection.Speeds)
	fmt.Printf("%8.3f,%8.3f\t= BVP Y0, Y1\n", ip.BVP.Y0, ip.BVP.Y1)
	fmt.Printf("[%d]\t\t\t\t= BVP Node Count\n", ip.BVP.NodeCount)
}
