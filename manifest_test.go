package nibtb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	body := `
farm_ids_file = "farms.txt"
sett_ids_file = "setts.txt"
slaughterhouse_moves_file = "slaughter.txt"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.FarmIDsFile != "farms.txt" || m.SettIDsFile != "setts.txt" {
		t.Errorf("manifest = %+v, want farms.txt/setts.txt", m)
	}
	if m.ObservedSNPPairwiseDistanceFile != "" {
		t.Errorf("ObservedSNPPairwiseDistanceFile = %q, want empty (not set in the file)", m.ObservedSNPPairwiseDistanceFile)
	}
}

func TestApplyManifestFillsOnlyAbsentKeys(t *testing.T) {
	kv := map[string]string{
		"farmIds": "already-set.txt",
	}
	m := &Manifest{
		FarmIDsFile: "manifest-farms.txt",
		SettIDsFile: "manifest-setts.txt",
	}

	ApplyManifest(kv, m)

	if kv["farmIds"] != "already-set.txt" {
		t.Errorf("farmIds = %q, want the config file's own value to win", kv["farmIds"])
	}
	if kv["settIds"] != "manifest-setts.txt" {
		t.Errorf("settIds = %q, want the manifest's value applied", kv["settIds"])
	}
}

func TestApplyManifestSkipsEmptyManifestValues(t *testing.T) {
	kv := map[string]string{}
	m := &Manifest{}

	ApplyManifest(kv, m)

	if _, ok := kv["farmIds"]; ok {
		t.Errorf("farmIds was set from an empty manifest field")
	}
}
