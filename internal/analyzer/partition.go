package analyzer

import (
	"strings"

	"fraud-dictionary/internal/dataset"
)

// Role 列的语义角色
type Role int

const (
	RoleNumeric Role = iota
	RoleCategorical
	RoleIdentifier
)

func (r Role) String() string {
	switch r {
	case RoleNumeric:
		return "numeric"
	case RoleIdentifier:
		return "identifier"
	default:
		return "categorical"
	}
}

// MarshalText 供 YAML/JSON 输出使用
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

var (
	// 衍生数值特征，优先级最高
	explicitNumericFeatures = []string{
		"age_of_person", "survival_days", "account_age",
	}

	identifierPatterns = []string{
		"id", "account_no", "account_number", "source_account_number", "destination_account_number",
		"full_name", "username", "cellphone", "gr_card_no",
	}

	binaryFlagPatterns = []string{
		"flag_", "_flag", "_status", "carded_status", "card_type", "origination_type",
		"origination_sub_type", "orig_channel", "orig_os", "athena_fraud_tag", "final_tag",
		"dna_final_tag", "fraud_types", "fraud_channel_source", "matching_level",
		"imputed", "_imputed",
	}

	categoricalPatterns = []string{
		"date_", "datetime_", "_date", "_datetime", "ticket_no", "ops_comments",
		"orig_", "kiosk_", "fila_", "acc_mgmt_channel",
	}
)

// Partition 特征分组结果，组内保持输入顺序
type Partition struct {
	Numeric     []string `json:"numeric" yaml:"numeric"`
	Categorical []string `json:"categorical" yaml:"categorical"`
	Identifier  []string `json:"identifier" yaml:"identifier"`
}

// Partitioner 特征分组器
type Partitioner struct {
	explicitNumeric map[string]bool
	identifier      []string
	binaryFlag      []string
	categorical     []string
}

// NewPartitioner 创建分组器
func NewPartitioner() *Partitioner {
	explicit := make(map[string]bool, len(explicitNumericFeatures))
	for _, name := range explicitNumericFeatures {
		explicit[name] = true
	}
	return &Partitioner{
		explicitNumeric: explicit,
		identifier:      identifierPatterns,
		binaryFlag:      binaryFlagPatterns,
		categorical:     categoricalPatterns,
	}
}

// Classify 按规则顺序判定列的角色，先命中者生效
func (p *Partitioner) Classify(col dataset.ColumnDescriptor) Role {
	lower := strings.ToLower(col.Name)

	switch {
	case p.explicitNumeric[col.Name]:
		return RoleNumeric
	case containsAny(lower, p.identifier):
		return RoleIdentifier
	case containsAny(lower, p.binaryFlag):
		return RoleCategorical
	case col.Type == dataset.Text || col.Type == dataset.Datetime:
		return RoleCategorical
	case containsAny(lower, p.categorical):
		return RoleCategorical
	case col.Type.IsNumeric():
		return RoleNumeric
	default:
		return RoleCategorical
	}
}

// Partition 对所有列分组
func (p *Partitioner) Partition(columns []dataset.ColumnDescriptor) Partition {
	var result Partition
	for _, col := range columns {
		switch p.Classify(col) {
		case RoleNumeric:
			result.Numeric = append(result.Numeric, col.Name)
		case RoleIdentifier:
			result.Identifier = append(result.Identifier, col.Name)
		default:
			result.Categorical = append(result.Categorical, col.Name)
		}
	}
	return result
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
