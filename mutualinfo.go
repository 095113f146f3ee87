package bramble

import (
	"context"
	"fmt"
	"math"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

/*
mutualInformation estimates the mutual information between two nominal
attributes from the empirical frequencies of their value pairs in the
dataset. Instances missing a value for either attribute are skipped.
*/
func mutualInformation(ctx context.Context, ds dataset.Dataset, x, y *attribute.NominalAttribute) (float64, error) {
	instances, err := ds.Instances(ctx)
	if err != nil {
		return 0, fmt.Errorf("estimating mutual information between %s and %s: %v", x.Name(), y.Name(), err)
	}
	joint := make([][]float64, x.Cardinality())
	for i := range joint {
		joint[i] = make([]float64, y.Cardinality())
	}
	var count float64
	for _, inst := range instances {
		xv, ok := inst.Value(x)
		if !ok {
			continue
		}
		yv, ok := inst.Value(y)
		if !ok {
			continue
		}
		joint[xv][yv]++
		count++
	}
	if count == 0 {
		return 0, nil
	}
	xMarginal := make([]float64, x.Cardinality())
	yMarginal := make([]float64, y.Cardinality())
	for xv := range joint {
		for yv, c := range joint[xv] {
			xMarginal[xv] += c
			yMarginal[yv] += c
		}
	}
	var mi float64
	for xv := range joint {
		for yv, c := range joint[xv] {
			if c == 0 {
				continue
			}
			pxy := c / count
			px := xMarginal[xv] / count
			py := yMarginal[yv] / count
			mi += pxy * math.Log(pxy/(px*py))
		}
	}
	return mi, nil
}

/*
conditionalMutualInformation estimates the mutual information between
two nominal attributes conditioned on a third, the class:

	CMI(X,Y|C) = sum over c,x,y of P(x,y,c)*log(P(x,y|c)/(P(x|c)*P(y|c)))

estimated from empirical frequencies. Instances missing a value for any
of the three attributes are skipped.
*/
func conditionalMutualInformation(ctx context.Context, ds dataset.Dataset, x, y, class *attribute.NominalAttribute) (float64, error) {
	instances, err := ds.Instances(ctx)
	if err != nil {
		return 0, fmt.Errorf("estimating conditional mutual information between %s and %s: %v", x.Name(), y.Name(), err)
	}
	joint := make([][][]float64, class.Cardinality())
	for cv := range joint {
		joint[cv] = make([][]float64, x.Cardinality())
		for xv := range joint[cv] {
			joint[cv][xv] = make([]float64, y.Cardinality())
		}
	}
	var count float64
	for _, inst := range instances {
		cv, ok := inst.Value(class)
		if !ok {
			continue
		}
		xv, ok := inst.Value(x)
		if !ok {
			continue
		}
		yv, ok := inst.Value(y)
		if !ok {
			continue
		}
		joint[cv][xv][yv]++
		count++
	}
	if count == 0 {
		return 0, nil
	}
	var cmi float64
	for cv := range joint {
		var classCount float64
		xMarginal := make([]float64, x.Cardinality())
		yMarginal := make([]float64, y.Cardinality())
		for xv := range joint[cv] {
			for yv, c := range joint[cv][xv] {
				classCount += c
				xMarginal[xv] += c
				yMarginal[yv] += c
			}
		}
		if classCount == 0 {
			continue
		}
		for xv := range joint[cv] {
			for yv, c := range joint[cv][xv] {
				if c == 0 {
					continue
				}
				pxyc := c / count
				pxyGivenC := c / classCount
				pxGivenC := xMarginal[xv] / classCount
				pyGivenC := yMarginal[yv] / classCount
				cmi += pxyc * math.Log(pxyGivenC/(pxGivenC*pyGivenC))
			}
		}
	}
	return cmi, nil
}
