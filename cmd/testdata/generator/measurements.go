package generator

import (
	"io"
	"math"
	"math/rand/v2"
	"strconv"
)

// station is a weather station name and its mean temperature
type station struct {
	name string
	mean float64
}

var stations = []station{
	{"Abha", 18.0}, {"Abidjan", 26.0}, {"Accra", 26.4}, {"Addis Ababa", 16.0},
	{"Adelaide", 17.3}, {"Aden", 29.1}, {"Alexandria", 20.0}, {"Almaty", 10.0},
	{"Amsterdam", 10.2}, {"Anchorage", 2.8}, {"Athens", 19.2}, {"Baghdad", 22.77},
	{"Bangkok", 28.6}, {"Barcelona", 18.2}, {"Beijing", 12.9}, {"Bergen", 7.7},
	{"Bulawayo", 18.9}, {"Cairo", 21.4}, {"Chongqing", 18.6}, {"Cracow", 9.3},
	{"Dakar", 24.0}, {"Dublin", 9.8}, {"Hamburg", 9.7}, {"Helsinki", 5.9},
	{"Istanbul", 13.9}, {"İzmir", 17.9}, {"Jakarta", 26.7}, {"Kyiv", 8.4},
	{"Lagos", 26.8}, {"Lima", 19.0}, {"Montréal", 6.8}, {"Nouakchott", 25.7},
	{"Palembang", 27.3}, {"Reykjavík", 4.3}, {"São Paulo", 19.3}, {"St. John's", 5.0},
	{"Tokyo", 15.4}, {"Ürümqi", 7.4}, {"Vladivostok", 4.9}, {"Zürich", 9.3},
}

// MeasurementsGenerator writes "station;temperature" lines with one decimal,
// each station's values drawn around its mean.
type MeasurementsGenerator struct {
	Stations int // how many stations of the built-in list to use
	rand     *rand.Rand
	buf      []byte
}

func (g *MeasurementsGenerator) Init(r *rand.Rand) {
	g.rand = r
	if g.Stations <= 0 || g.Stations > len(stations) {
		g.Stations = len(stations)
	}
}

func (g *MeasurementsGenerator) WriteLine(w io.Writer) error {
	s := stations[g.rand.IntN(g.Stations)]

	temp := s.mean + g.rand.NormFloat64()*10
	temp = math.Round(max(-99.9, min(99.9, temp))*10) / 10

	g.buf = append(g.buf[:0], s.name...)
	g.buf = append(g.buf, ';')
	g.buf = strconv.AppendFloat(g.buf, temp, 'f', 1, 64)
	g.buf = append(g.buf, '\n')

	_, err := w.Write(g.buf)
	return err
}

func (g *MeasurementsGenerator) Description() string {
	return "Weather station readings: station;temperature"
}

func (g *MeasurementsGenerator) DefaultCount() int64 {
	return 1e6 // 1,000,000 lines
}
