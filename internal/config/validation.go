package config

import (
	"fmt"
	"strings"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.Calculator.validate(); err != nil {
		return err
	}
	return c.Data.validate()
}

func (c *CalculatorConfig) validate() error {
	switch strings.ToUpper(strings.TrimSpace(c.DefaultStandard)) {
	case "AUTO", "CDC", "WHO":
	default:
		return fmt.Errorf("calculator.default_standard must be AUTO, CDC or WHO (got %q)", c.DefaultStandard)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("calculator.batch_workers must be >= 1")
	}
	if c.BatchWorkers > maxBatchWorkers {
		return fmt.Errorf("calculator.batch_workers must be <= %d", maxBatchWorkers)
	}
	return nil
}

func (d *DataConfig) validate() error {
	if d.Seed && strings.TrimSpace(d.DBPath) == "" {
		return fmt.Errorf("data.seed requires data.db_path")
	}
	return nil
}
