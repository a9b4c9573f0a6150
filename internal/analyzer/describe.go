package analyzer

import (
	"fmt"
	"strings"

	"fraud-dictionary/internal/dataset"
)

// featureName 列名及其小写形式
// 大部分规则区分大小写，只有少数规则使用 lower
type featureName struct {
	raw   string
	lower string
}

func (n featureName) has(sub string) bool      { return strings.Contains(n.raw, sub) }
func (n featureName) hasLower(sub string) bool { return strings.Contains(n.lower, sub) }

// suffix 最后一个下划线之后的部分，没有下划线时返回整个列名
func (n featureName) suffix() string {
	if i := strings.LastIndex(n.raw, "_"); i >= 0 {
		return n.raw[i+1:]
	}
	return n.raw
}

// second 以下划线分隔的第二段（调用方保证存在下划线）
func (n featureName) second() string {
	parts := strings.Split(n.raw, "_")
	if len(parts) < 2 {
		return n.raw
	}
	return parts[1]
}

func (n featureName) spaced() string {
	return strings.ReplaceAll(n.raw, "_", " ")
}

// descriptionRule 描述规则
// text 返回空串表示规则族已命中但没有子规则匹配，此时直接使用最终兜底描述
type descriptionRule struct {
	name  string
	match func(n featureName) bool
	text  func(n featureName) string
}

func fixed(s string) func(featureName) string {
	return func(featureName) string { return s }
}

func exact(name string) func(featureName) bool {
	return func(n featureName) bool { return n.raw == name }
}

func nameContains(subs ...string) func(featureName) bool {
	return func(n featureName) bool {
		for _, s := range subs {
			if n.has(s) {
				return true
			}
		}
		return false
	}
}

// Describer 规则引擎：根据列名和声明类型生成业务描述
type Describer struct {
	rules []descriptionRule
}

// NewDescriber 创建描述生成器
func NewDescriber() *Describer {
	return &Describer{rules: descriptionRules}
}

// Describe 生成业务描述，总是返回非空字符串
func (d *Describer) Describe(name string, t dataset.DeclaredType) string {
	n := featureName{raw: name, lower: strings.ToLower(name)}

	for _, r := range d.rules {
		if !r.match(n) {
			continue
		}
		if s := r.text(n); s != "" {
			return s
		}
		return finalFallback(n)
	}

	switch t {
	case dataset.Integer, dataset.Float:
		return fmt.Sprintf("Numeric metric related to %s for quantitative risk assessment", n.spaced())
	case dataset.Text:
		return fmt.Sprintf("Categorical information for %s supporting qualitative risk analysis", n.spaced())
	case dataset.Datetime:
		return fmt.Sprintf("Temporal data for %s enabling time-based pattern analysis", n.spaced())
	}
	return finalFallback(n)
}

// RuleName 返回命中的规则名，没有命中时返回空串
func (d *Describer) RuleName(name string) string {
	n := featureName{raw: name, lower: strings.ToLower(name)}
	for _, r := range d.rules {
		if r.match(n) {
			return r.name
		}
	}
	return ""
}

func finalFallback(n featureName) string {
	return fmt.Sprintf("Feature %s providing context for fraud detection and risk assessment", n.raw)
}

// paymentNetwork 支付网络规则
func paymentNetwork(network, countPurpose, amountPurpose string) func(featureName) string {
	return func(n featureName) string {
		switch {
		case n.has("count"):
			direction := "outgoing"
			if n.has("_IN") {
				direction = "incoming"
			}
			return fmt.Sprintf("Number of %s transactions via %s %s", direction, network, countPurpose)
		case n.has("amount"):
			direction := "sent"
			if n.has("_IN") {
				direction = "received"
			}
			return fmt.Sprintf("Total amount %s via %s %s", direction, network, amountPurpose)
		}
		return ""
	}
}

// descriptionRules 按优先级排列，先命中者生效
var descriptionRules = []descriptionRule{
	// 衍生特征
	{"age_of_person", exact("age_of_person"),
		fixed("Customer age in years calculated from date_of_birth, used for demographic risk profiling")},
	{"survival_days", exact("survival_days"),
		fixed("Account survival duration in days (from onboarding to restriction), with negative values set to 0")},
	{"account_age", exact("account_age"),
		fixed("Account age in days from onboarding to current date, indicating customer tenure regardless of status")},

	// 周维度交易
	{"weekly_amount",
		func(n featureName) bool { return n.hasLower("amt") && n.has("week") },
		func(n featureName) string {
			return fmt.Sprintf("Weekly transaction amount for %s indicating spending behavior patterns", n.suffix())
		}},
	{"weekly_count",
		func(n featureName) bool { return n.hasLower("count") && n.has("week") },
		func(n featureName) string {
			return fmt.Sprintf("Weekly transaction count for %s showing account activity frequency", n.suffix())
		}},
	{"weekly_velocity",
		func(n featureName) bool { return n.hasLower("velocity") && n.has("week") },
		func(n featureName) string {
			return fmt.Sprintf("Transaction velocity (transactions per day) for %s indicating account usage intensity", n.suffix())
		}},
	{"weekly_days_active",
		func(n featureName) bool { return n.hasLower("days_active") && n.has("week") },
		func(n featureName) string {
			return fmt.Sprintf("Number of active transaction days in %s showing engagement consistency", n.suffix())
		}},

	// 变化量与加速度
	{"velocity_delta",
		func(n featureName) bool { return n.hasLower("velocity_delta") },
		fixed("Change in transaction velocity between weeks indicating behavioral shifts or anomalies")},
	{"velocity_accel",
		func(n featureName) bool { return n.hasLower("velocity_accel") },
		fixed("Transaction velocity acceleration showing rapid behavior changes potentially linked to fraud")},
	{"dropoff",
		func(n featureName) bool { return n.hasLower("dropoff") },
		fixed("Flag indicating significant transaction activity decrease after initial period")},

	// 30 天汇总
	{"aggregate_30d", nameContains("30d"),
		func(n featureName) string {
			switch {
			case n.has("count"):
				return "Total transaction count over 30-day period showing overall account activity"
			case n.has("amt"):
				return "Total transaction amount over 30-day period indicating financial flow volume"
			case n.has("velocity"):
				return "Average daily transaction velocity over 30-day period showing sustained activity level"
			case n.has("volatility"):
				return "Transaction volatility over 30-day period indicating behavioral consistency or irregularity"
			}
			return ""
		}},

	{"vol_score", nameContains("vol_score"),
		func(n featureName) string {
			return fmt.Sprintf("Volatility score for %s measuring transaction pattern irregularity", n.suffix())
		}},

	// 日极值
	{"daily_max",
		func(n featureName) bool { return strings.HasPrefix(n.raw, "max_") && n.has("day") },
		func(n featureName) string {
			return fmt.Sprintf("Maximum daily %s indicating peak account usage or potential abuse", n.second())
		}},
	{"daily_min",
		func(n featureName) bool { return strings.HasPrefix(n.raw, "min_") && n.has("day") },
		func(n featureName) string {
			return fmt.Sprintf("Minimum daily %s showing baseline account activity", n.second())
		}},
	{"daily_avg",
		func(n featureName) bool { return strings.HasPrefix(n.raw, "avg_") && n.has("day") },
		func(n featureName) string {
			metric := strings.ReplaceAll(strings.ReplaceAll(n.raw, "avg_", ""), "_day", "")
			return fmt.Sprintf("Average daily %s indicating typical account behavior", metric)
		}},

	// 资金流向
	{"inflow_outflow_ratio", nameContains("inflow_outflow_ratio"),
		fixed("Ratio of money flowing in vs out of account indicating account usage type (sink vs pass-through)")},
	{"net_flow", nameContains("net_flow"),
		fixed("Net money flow (in minus out) indicating account balance change patterns")},
	{"same_day_cico", nameContains("same_day_cico"),
		fixed("Cash-in-cash-out same day patterns potentially indicating money laundering behavior")},

	// 支付网络
	{"instapay", nameContains("INSTAPAY"),
		paymentNetwork("InstaPay (real-time) network", "showing payment preference", "indicating financial flow volume")},
	{"pesonet", nameContains("PESONET"),
		paymentNetwork("PESONet (batch) network", "showing institutional payment patterns", "indicating bulk payment behavior")},

	// 时间行为
	{"weekend_txn", nameContains("weekend_txn"),
		fixed("Weekend transaction activity indicating non-business hour usage patterns")},
	{"night_txn", nameContains("night_txn"),
		fixed("Nighttime transaction activity potentially indicating suspicious or automated behavior")},
	{"timing_entropy", nameContains("entropy"),
		func(n featureName) string {
			switch {
			case n.has("hour"):
				return "Hour-of-day transaction entropy measuring predictability of timing patterns"
			case n.has("weekday"):
				return "Day-of-week transaction entropy indicating schedule regularity or randomness"
			}
			return ""
		}},

	// 交易间隔与会话
	{"time_btwn_txns", nameContains("time_btwn_txns"),
		fixed("Time intervals between transactions showing account usage rhythm and automation patterns")},
	{"sessions_per_day", nameContains("sessions_per_day"),
		fixed("Transaction sessions per day (grouped by time gaps) indicating user behavior patterns")},
	{"cv_time_btwn_txns", nameContains("cv_time_btwn_txns"),
		fixed("Coefficient of variation in transaction timing indicating behavioral consistency")},

	// 交易对手
	{"unique_counterparties", nameContains("unique_source", "unique_destination"),
		fixed("Number of unique counterparties indicating account's network diversity and potential risk")},
	{"repeat_counterparty_ratio", nameContains("repeat_counterparty_ratio"),
		fixed("Ratio of repeated vs new counterparties indicating relationship-based vs random transaction patterns")},
	{"counterparty_entropy",
		func(n featureName) bool { return n.has("entropy") && (n.has("source") || n.has("destination")) },
		fixed("Counterparty diversity entropy measuring concentration risk and behavioral patterns")},
	{"top_counterparty_share",
		func(n featureName) bool { return n.has("top_") && n.has("share") },
		fixed("Concentration of transactions with primary counterparty indicating dependency or control patterns")},

	// 客户资料
	{"profile_id", exact("profile_id"),
		fixed("Unique customer identifier for linking account activities and fraud investigations")},
	{"account_no", exact("account_no"),
		fixed("Primary account number for transaction tracking and customer identification")},
	{"full_name", exact("full_name"),
		fixed("Customer full name for identity verification and compliance reporting")},
	{"username", exact("username"),
		fixed("Digital platform username indicating online banking engagement level")},
	{"date_of_birth", exact("date_of_birth"),
		fixed("Customer birth date for age-based risk profiling and regulatory compliance")},
	{"cellphone", exact("cellphone"),
		fixed("Registered mobile number for customer contact and SMS-based authentication")},

	// 开户
	{"orig_onboarded", nameContains("orig_onboarded"),
		fixed("Account opening timestamp for tenure analysis and early fraud detection patterns")},
	{"orig_channel", nameContains("orig_channel"),
		fixed("Account opening channel (online/branch) indicating customer acquisition risk profile")},
	{"orig_os", nameContains("orig_os"),
		fixed("Operating system used during account opening indicating device-based risk patterns")},
	{"origination_type", nameContains("origination_type"),
		fixed("Type of account origination process indicating verification level and fraud risk")},
	{"orig_primary_source_of_funds", nameContains("orig_primary_source_of_funds"),
		fixed("Declared primary income source for AML compliance and risk assessment")},
	{"orig_industry", nameContains("orig_industry", "orig_occupation"),
		fixed("Customer industry/occupation for risk profiling and transaction pattern validation")},

	// 卡与账户状态
	{"card",
		func(n featureName) bool { return n.hasLower("card") },
		fixed("Debit/credit card information indicating payment method preferences and fraud vectors")},
	{"account_status", nameContains("account_status"),
		fixed("Current account standing indicating operational restrictions or compliance actions")},
	{"restricted", nameContains("restricted"),
		fixed("Account restriction information for fraud prevention and compliance enforcement")},

	// 欺诈标签
	{"fraud_tag", nameContains("fraud_tag", "final_tag"),
		fixed("Fraud classification label for model training and validation purposes")},
	{"fraud_types", nameContains("fraud_types"),
		fixed("Specific fraud category for targeted detection and prevention strategies")},
	{"fraud_channel_source", nameContains("fraud_channel_source"),
		fixed("Fraud vector identification for channel-specific risk mitigation")},
	{"ticket_no", nameContains("ticket_no"),
		fixed("Investigation case identifier for fraud review and audit trail tracking")},
	{"ops_comments", nameContains("ops_comments"),
		fixed("Operational notes from fraud analysts providing context for automated detection")},

	// 外部交互
	{"fila", nameContains("fila"),
		fixed("FILA (Filipino banking network) interaction data for cross-institution risk assessment")},
	{"kiosk_interaction", nameContains("kiosk_interaction"),
		fixed("Physical kiosk usage patterns indicating offline banking behavior and location risk")},

	{"contact_change", nameContains("change_email", "change_mob_num"),
		fixed("Contact information change frequency indicating potential account takeover attempts")},

	// 交易日期
	{"txn_date_bounds", nameContains("first_txn_date", "last_txn_date"),
		fixed("Transaction timeline boundaries for account lifecycle and dormancy analysis")},
	{"date_tagged", nameContains("date_tagged"),
		fixed("Fraud identification date for timeline analysis and detection lag measurement")},
}
