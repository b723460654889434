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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofdm/InputParameters"
	"github.com/notargets/gofdm/model_problems/Advection1D"
	"github.com/notargets/gofdm/model_problems/BVP1D"
)

// ConvergeCmd represents the converge command
var ConvergeCmd = &cobra.Command{
	Use:   "converge",
	Short: "Error versus resolution for the upwind scheme and the Thomas solve",
	Long: `
Repeatedly halves the grid spacing and records the error against the exact solution:
the L1 error of the upwind scheme at the final time layer and the maximum error of
the Thomas solve of u'' = -pi^2 sin(pi x). The results are written as CSV, read
them back with tools/convOrder to get the observed order of accuracy.

gofdm converge --levels 7 --ratio 0.5 --speed 5`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			cs       = &ConvergenceSetup{}
			file     *os.File
			fileName string
		)
		cs.Levels, _ = cmd.Flags().GetInt("levels")
		cs.Ratio, _ = cmd.Flags().GetFloat64("ratio")
		cs.Speed, _ = cmd.Flags().GetFloat64("speed")
		cs.Advection = InputParameters.Default().Advection
		fileName, _ = cmd.Flags().GetString("file")
		if file, err = os.Create(filepath.Join(viper.GetString("outDir"), fileName)); err != nil {
			return
		}
		defer file.Close()
		if err = RunConvergence(file, cs); err != nil {
			return
		}
		log.WithField("file", file.Name()).Info("Wrote convergence study")
		return file.Close()
	},
}

func init() {
	rootCmd.AddCommand(ConvergeCmd)
	ConvergeCmd.Flags().Int("levels", 7, "number of grid refinements, each halves the spacing")
	ConvergeCmd.Flags().Float64("ratio", 0.5, "stability ratio for the advection study")
	ConvergeCmd.Flags().Float64("speed", 5, "wave speed for the advection study")
	ConvergeCmd.Flags().String("file", "convergence.csv", "output CSV file name, inside outDir")
}

type ConvergenceSetup struct {
	Levels       int
	Ratio, Speed float64
	Advection    InputParameters.AdvectionParameters
}

// ConvergenceRecord is one row of the study.
type ConvergenceRecord struct {
	Title     string
	Intervals int
	Error     float64
}

var ConvergenceHeader = []string{"Title", "Intervals", "Error"}

func (r ConvergenceRecord) strings() []string {
	return []string{r.Title, strconv.Itoa(r.Intervals), strconv.FormatFloat(r.Error, 'g', -1, 64)}
}

// Study runs both refinement sequences, starting from 10 intervals.
func (cs *ConvergenceSetup) Study() (recs []ConvergenceRecord, err error) {
	var (
		c        = NewAdvectionModel(cs.Advection)
		advTitle = fmt.Sprintf("Upwind r=%v a=%v", cs.Ratio, cs.Speed)
	)
	if cs.Levels < 1 {
		return nil, fmt.Errorf("levels must be at least 1, got %d", cs.Levels)
	}
	for level, n := 0, 10; level < cs.Levels; level, n = level+1, 2*n {
		var (
			U, UE    Advection1D.Field
			u, exact []float64
		)
		if U, UE, err = SolveScenario(c, Scenario{NodeCount: n + 1, Ratio: cs.Ratio, Speed: cs.Speed}); err != nil {
			return
		}
		recs = append(recs, ConvergenceRecord{advTitle, n, Advection1D.L1Error(U, UE)})

		if u, exact, _, err = SolveBVP(BVP1D.Sine(0, 0, n+1)); err != nil {
			return
		}
		recs = append(recs, ConvergenceRecord{"Thomas sine", n, BVP1D.MaxError(u, exact)})
		log.WithFields(log.Fields{"intervals": n}).Debug("Refinement done")
	}
	return
}

func RunConvergence(w io.Writer, cs *ConvergenceSetup) (err error) {
	var (
		recs []ConvergenceRecord
		cw   = csv.NewWriter(w)
	)
	if recs, err = cs.Study(); err != nil {
		return
	}
	if err = cw.Write(ConvergenceHeader); err != nil {
		return
	}
	for _, r := range recs {
		log.WithFields(log.Fields{"title": r.Title, "intervals": r.Intervals, "error": r.Error}).Info("Convergence")
		if err = cw.Write(r.strings()); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
