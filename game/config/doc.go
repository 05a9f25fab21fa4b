// Package config loads named missions from a directory of text files.
//
// Each "<name>.txt" file in the directory holds one mission in the plain
// text format understood by package mission. Parsed missions are cached in
// memory; RefreshCache forces the next load to read the files again. A
// built-in mission called "sample" (the classic three-robot scenario) is
// always available and may be overridden by a sample.txt file.
//
// Usage:
//
//	missions, err := config.NewManager("missions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	m, err := missions.LoadMission("sample")
package config
