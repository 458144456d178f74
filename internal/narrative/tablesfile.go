// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// TablesFile is the on-disk form of the detection tables: the two topic
// pattern tables and the alignment table. Operators edit this file to
// change which narratives the engine can detect, without rebuilding.
type TablesFile struct {
	SocialTopics []types.TopicRule      `yaml:"social_topics"`
	RepoTopics   []types.TopicRule      `yaml:"repo_topics"`
	Alignment    []types.AlignmentEntry `yaml:"alignment"`
}

// LoadTablesFile reads a tables file and validates the alignment table.
// Sections left empty in the file fall back to the built-in defaults.
func LoadTablesFile(path string) (TablesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TablesFile{}, fmt.Errorf("reading tables file: %w", err)
	}
	var tf TablesFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return TablesFile{}, fmt.Errorf("parsing tables file %s: %w", path, err)
	}
	if len(tf.Alignment) > 0 {
		if err := ValidateAlignment(tf.Alignment); err != nil {
			return TablesFile{}, fmt.Errorf("tables file %s: %w", path, err)
		}
	}
	return tf, nil
}
