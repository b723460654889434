/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/gofdm/InputParameters"
	"github.com/notargets/gofdm/model_problems/Advection1D"
	"github.com/notargets/gofdm/render"
	"github.com/notargets/gofdm/utils"
)

// AdvectCmd represents the advect command
var AdvectCmd = &cobra.Command{
	Use:   "advect",
	Short: "Upwind scheme for the traveling shelf, compared with the exact solution",
	Long: `
Advects the shelf u(x,0) = 3 for x <= 0, 1 for x > 0 with the first order upwind
(Godunov) scheme over x in [-10,10], t in [0,1], for every combination of node
count, stability ratio and wave speed. Each scenario is written as an animated GIF
named <intervals>_<ratio>_<speed>.gif showing the approximate and exact solutions.

gofdm advect -n 11,101 -r 0.25,0.5,1,1.25 -a 5`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParameters
			ma = &ModelAdvect{}
		)
		if ip, err = processInput(cmd); err != nil {
			return
		}
		if cmd.Flags().Changed("nodes") {
			ip.Advection.NodeCounts, _ = cmd.Flags().GetIntSlice("nodes")
		}
		if cmd.Flags().Changed("ratios") {
			ip.Advection.Ratios, _ = cmd.Flags().GetFloat64Slice("ratios")
		}
		if cmd.Flags().Changed("speeds") {
			ip.Advection.Speeds, _ = cmd.Flags().GetFloat64Slice("speeds")
		}
		ma.OutDir = viper.GetString("outDir")
		ma.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		ma.Delay = time.Duration(dr) * time.Millisecond
		ma.Parallel, _ = cmd.Flags().GetInt("parallel")
		ma.Render = render.DefaultOptions()
		if viper.GetBool("verbose") {
			ip.Print()
		}
		return RunAdvection(ma, ip)
	},
}

func init() {
	rootCmd.AddCommand(AdvectCmd)
	def := InputParameters.Default().Advection
	AdvectCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or INI file with the scenario parameters")
	AdvectCmd.Flags().IntSliceP("nodes", "n", def.NodeCounts, "number of space nodes, comma separated")
	AdvectCmd.Flags().Float64SliceP("ratios", "r", def.Ratios, "stability ratios r = a*t/h, stable for r <= 1")
	AdvectCmd.Flags().Float64SliceP("speeds", "a", def.Speeds, "wave speeds, nonzero")
	AdvectCmd.Flags().BoolP("graph", "g", false, "display a live graph while writing the GIFs")
	AdvectCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay between graph frames")
	AdvectCmd.Flags().IntP("parallel", "p", 1, "scenarios solved at once, 0 uses every CPU")
}

// processInput loads the scenario file when one is given, the reference
// scenarios otherwise.
func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters, err error) {
	var (
		fileName string
	)
	if fileName, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(fileName) == 0 {
		return InputParameters.Default(), nil
	}
	return InputParameters.Load(fileName)
}

type ModelAdvect struct {
	OutDir   string
	Graph    bool
	Delay    time.Duration
	Parallel int
	Render   render.Options
}

type Scenario struct {
	NodeCount    int
	Ratio, Speed float64
}

// Name follows the <intervals>_<ratio>_<speed> convention of the output files.
func (s Scenario) Name() string {
	return strings.Join([]string{
		strconv.Itoa(s.NodeCount - 1),
		strconv.FormatFloat(s.Ratio, 'f', -1, 64),
		strconv.FormatFloat(s.Speed, 'f', -1, 64),
	}, "_")
}

// Scenarios enumerates every (node count, ratio, speed) combination, node
// count varying slowest.
func Scenarios(ap InputParameters.AdvectionParameters) (sc []Scenario) {
	for _, N := range ap.NodeCounts {
		for _, r := range ap.Ratios {
			for _, a := range ap.Speeds {
				sc = append(sc, Scenario{NodeCount: N, Ratio: r, Speed: a})
			}
		}
	}
	return
}

func NewAdvectionModel(ap InputParameters.AdvectionParameters) *Advection1D.Advection {
	shelf := Advection1D.DefaultShelf()
	shelf.High, shelf.Low = ap.High, ap.Low
	return Advection1D.NewAdvection(Advection1D.Domain{
		XMin: ap.XMin, XMax: ap.XMax,
		TMin: ap.TMin, TMax: ap.TMax,
	}, shelf)
}

// Frames pairs every approximate layer with the exact one. The vertical range
// is fixed to the approximate extremes so all frames share axes.
func Frames(sc Scenario, U, UE Advection1D.Field) (frames []render.Frame) {
	var (
		fmin, fmax = U.U.Min() - 0.25, U.U.Max() + 0.25
	)
	frames = make([]render.Frame, U.Layers())
	for ti := range frames {
		frames[ti] = render.Frame{
			Title:  fmt.Sprintf("N = %d, r = %v, a = %v, t = %6.3f", sc.NodeCount-1, sc.Ratio, sc.Speed, U.T[ti]),
			X:      U.X,
			Approx: U.Layer(ti),
			Exact:  UE.Layer(ti),
			YMin:   fmin,
			YMax:   fmax,
		}
	}
	return
}

// SolveScenario runs the scheme and the exact solution for one scenario.
func SolveScenario(c *Advection1D.Advection, sc Scenario) (U, UE Advection1D.Field, err error) {
	err = measure("advect "+sc.Name(), func() (err error) {
		U, err = c.Solve(sc.NodeCount, sc.Ratio, sc.Speed)
		return
	})
	if err != nil {
		return
	}
	UE, err = c.Exact(sc.NodeCount, sc.Ratio, sc.Speed)
	return
}

func runScenario(ma *ModelAdvect, c *Advection1D.Advection, sc Scenario, lc *utils.LineChart) (err error) {
	var (
		U, UE Advection1D.Field
	)
	logger := log.WithFields(log.Fields{"xNodesNumber": sc.NodeCount, "r": sc.Ratio, "a": sc.Speed})
	logger.Info("Solving")
	if U, UE, err = SolveScenario(c, sc); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name(), err)
	}
	logger.WithFields(log.Fields{
		"layers":   U.Layers(),
		"maxError": Advection1D.MaxError(U, UE),
		"min":      U.U.Min(),
		"max":      U.U.Max(),
	}).Info("Solved, making GIF")
	if sc.Ratio > 1 {
		logger.Warn("Stability ratio above 1, the scheme is unstable")
	}
	frames := Frames(sc, U, UE)
	if lc != nil {
		for _, f := range frames {
			lc.Plot(0, f.X, f.Exact, 1, "exact")
			lc.Plot(ma.Delay, f.X, f.Approx, -1, "approx")
		}
	}
	return render.Animation(filepath.Join(ma.OutDir, sc.Name()+".gif"), frames, ma.Render)
}

func RunAdvection(ma *ModelAdvect, ip *InputParameters.InputParameters) (err error) {
	var (
		c   = NewAdvectionModel(ip.Advection)
		scs = Scenarios(ip.Advection)
		lc  *utils.LineChart
	)
	if len(scs) == 0 {
		return fmt.Errorf("no scenarios: node counts, ratios and speeds must all be non empty")
	}
	if ma.Graph {
		ap := ip.Advection
		lc = utils.NewLineChart(1280, 1024, ap.XMin, ap.XMax, ap.Low-1, ap.High+1)
		// The live chart shows one scenario at a time
		ma.Parallel = 1
	}
	var g errgroup.Group
	switch {
	case ma.Parallel <= 0:
		g.SetLimit(runtime.NumCPU())
	default:
		g.SetLimit(ma.Parallel)
	}
	for _, sc := range scs {
		g.Go(func() error {
			return runScenario(ma, c, sc, lc)
		})
	}
	return g.Wait()
}
