package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study, as written by gofdm converge")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	studies, err := readCSV(f)
	if err != nil {
		panic(err)
	}
	titles := make([]string, 0, len(studies))
	for title := range studies {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		cs := studies[title]
		fmt.Printf("Title = %s\n", cs.title)
		orders := cs.ObservedOrders()
		for i := range cs.intervals {
			if i == 0 {
				fmt.Printf("%6d, %12.5e\n", cs.intervals[i], cs.errors[i])
				continue
			}
			fmt.Printf("%6d, %12.5e, order = %6.3f\n", cs.intervals[i], cs.errors[i], orders[i-1])
		}
	}
}

type ConvergenceStudy struct {
	title     string
	intervals []int
	errors    []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(intervals int, e float64) {
	cs.intervals = append(cs.intervals, intervals)
	cs.errors = append(cs.errors, e)
}

// ObservedOrders returns log(e_i/e_i+1) / log(n_i+1/n_i) for each consecutive
// pair of refinements, which is log2(e_h/e_h/2) when the spacing is halved.
func (cs *ConvergenceStudy) ObservedOrders() (orders []float64) {
	for i := 1; i < len(cs.errors); i++ {
		ratio := float64(cs.intervals[i]) / float64(cs.intervals[i-1])
		orders = append(orders, math.Log(cs.errors[i-1]/cs.errors[i])/math.Log(ratio))
	}
	return
}

func readCSV(rd io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		ok      bool
		cs      *ConvergenceStudy
		n       int
		e       float64
	)
	studies = make(map[string]*ConvergenceStudy)
	r := csv.NewReader(bufio.NewReader(rd))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: want Title, Intervals, Error, got %v", i+1, rec)
		}
		title := rec[0]
		if n, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if e, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		cs.Add(n, e)
	}
	return
}
