package proj4_coordinate_converter

import (
	"bufio"
	_ "embed"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/glog"
)

//go:embed epsg
var epsgData string

var (
	epsgOnce     sync.Once
	epsgDatabase map[int]string
)

// Returns the proj.4 definitions bundled with the converter indexed by EPSG code
func getEpsgDatabase() map[int]string {
	epsgOnce.Do(func() {
		epsgDatabase = parseEpsgDatabase(epsgData)
		glog.V(2).Infof("loaded %d epsg definitions", len(epsgDatabase))
	})
	return epsgDatabase
}

// Parses lines in the form "<code> +proj=... <>", skipping comments and malformed lines
func parseEpsgDatabase(data string) map[int]string {
	database := make(map[int]string)

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.HasPrefix(line, "<") {
			continue
		}
		end := strings.Index(line, ">")
		if end < 0 {
			continue
		}
		code, err := strconv.Atoi(line[1:end])
		if err != nil {
			continue
		}
		definition := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[end+1:]), "<>"))
		if definition == "" {
			continue
		}
		database[code] = definition
	}

	return database
}

func knownEpsgCodes() []int {
	database := getEpsgDatabase()
	codes := make([]int, 0, len(database))
	for code := range database {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
