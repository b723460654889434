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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofdm/InputParameters"
	"github.com/notargets/gofdm/model_problems/BVP1D"
	"github.com/notargets/gofdm/render"
	"github.com/notargets/gofdm/utils"
)

// TMACmd represents the tma command
var TMACmd = &cobra.Command{
	Use:   "tma",
	Short: "Thomas algorithm for u'' = -2 with Dirichlet boundaries",
	Long: `
Discretizes u'' = -2 on [0,1] with central differences, solves the tridiagonal
system with the Thomas algorithm and plots it against the exact solution
u = -x^2 + (y1-y0+1)x + y0 in TMA.png.

gofdm tma -n 1001 --y0 0 --y1 0`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParameters
		)
		if ip, err = processInput(cmd); err != nil {
			return
		}
		if cmd.Flags().Changed("nodes") {
			ip.BVP.NodeCount, _ = cmd.Flags().GetInt("nodes")
		}
		if cmd.Flags().Changed("y0") {
			ip.BVP.Y0, _ = cmd.Flags().GetFloat64("y0")
		}
		if cmd.Flags().Changed("y1") {
			ip.BVP.Y1, _ = cmd.Flags().GetFloat64("y1")
		}
		return RunTMA(viper.GetString("outDir"), ip.BVP, render.DefaultOptions())
	},
}

func init() {
	rootCmd.AddCommand(TMACmd)
	def := InputParameters.Default().BVP
	TMACmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or INI file with the BVP parameters")
	TMACmd.Flags().IntP("nodes", "n", def.NodeCount, "number of grid nodes over [0,1], N+1")
	TMACmd.Flags().Float64("y0", def.Y0, "boundary value u(0)")
	TMACmd.Flags().Float64("y1", def.Y1, "boundary value u(1)")
}

func NewBVPConfig(bp InputParameters.BVPParameters) BVP1D.Config {
	return BVP1D.Config{Y0: bp.Y0, Y1: bp.Y1, NodeCount: bp.NodeCount}
}

// SolveBVP returns the Thomas solution, the exact solution and the node coordinates.
func SolveBVP(cfg BVP1D.Config) (u, exact, x []float64, err error) {
	var (
		T *utils.Tridiagonal
		g utils.Grid
	)
	if T, err = BVP1D.NewSystem(cfg); err != nil {
		return
	}
	err = measure(fmt.Sprintf("tma %d", cfg.NodeCount), func() (err error) {
		u, err = T.Solve()
		return
	})
	if err != nil {
		return
	}
	log.WithFields(log.Fields{"nodes": T.Order(), "residual": T.Residual(u)}).Debug("Thomas solve")
	if exact, err = BVP1D.Exact(cfg); err != nil {
		return
	}
	if g, err = cfg.Grid(); err != nil {
		return
	}
	x = g.Nodes()
	return
}

func RunTMA(outDir string, bp InputParameters.BVPParameters, opt render.Options) (err error) {
	var (
		cfg         = NewBVPConfig(bp)
		u, exact, x []float64
	)
	log.WithFields(log.Fields{"nodes": cfg.NodeCount, "y0": cfg.Y0, "y1": cfg.Y1}).Info("Solving")
	if u, exact, x, err = SolveBVP(cfg); err != nil {
		return
	}
	log.WithField("maxError", BVP1D.MaxError(u, exact)).Info("Solved")
	return render.LinePlot(filepath.Join(outDir, "TMA.png"), render.Frame{
		Title:  fmt.Sprintf("u'' = -2, N = %d", cfg.NodeCount-1),
		X:      x,
		Approx: u,
		Exact:  exact,
	}, opt)
}
