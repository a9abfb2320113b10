package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	"github.com/JoTroup/woocommerce-default-ordering/internal/ordering"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

// OptionName is the key the order list settings are stored under.
const OptionName = "wdo_options"

const optionsTable = "plugin_options"

// ErrCorruptSettings marks a stored settings row that cannot be decoded.
var ErrCorruptSettings = errors.New("decode settings")

type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Load returns the stored config, or the default one when nothing was saved yet.
func (r SettingsRepository) Load(ctx context.Context) (ordering.Config, error) {
	db := r.db()
	if db == nil {
		return ordering.Config{}, fmt.Errorf("load settings: database not connected")
	}

	var raw sql.NullString
	err := db.QueryRowContext(ctx,
		"SELECT option_value FROM "+optionsTable+" WHERE option_name = ? LIMIT 1", OptionName,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ordering.DefaultConfig(), nil
	}
	if err != nil {
		return ordering.Config{}, fmt.Errorf("load settings: %w", err)
	}
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return ordering.DefaultConfig(), nil
	}

	cfg, err := DecodeOptions([]byte(raw.String))
	if err != nil {
		return ordering.Config{}, fmt.Errorf("%w: %w", ErrCorruptSettings, err)
	}
	return cfg, nil
}

// Save upserts cfg as the single settings row.
func (r SettingsRepository) Save(ctx context.Context, cfg ordering.Config) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("save settings: database not connected")
	}
	if cfg.ExcludedStatuses == nil {
		cfg.ExcludedStatuses = []string{}
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO "+optionsTable+" (option_name, option_value) VALUES (?, ?) "+
			"ON DUPLICATE KEY UPDATE option_value = VALUES(option_value)",
		OptionName, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Delete removes the stored settings so the defaults apply again.
func (r SettingsRepository) Delete(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("delete settings: database not connected")
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM "+optionsTable+" WHERE option_name = ?", OptionName); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// DecodeOptions turns a stored option value into a Config. Older rows stored
// admin_filterStatus as a single string, a comma list or a JSON-encoded
// array string; all of them are accepted.
func DecodeOptions(raw []byte) (ordering.Config, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ordering.Config{}, err
	}

	cfg := ordering.Config{
		OrderField:       strings.TrimSpace(decodeString(fields["admin_orderby"])),
		CustomOrderField: strings.TrimSpace(decodeString(fields["admin_orderby_custom"])),
		ExcludedStatuses: decodeStatusList(fields["admin_filterStatus"]),
		AppliedToRole:    strings.TrimSpace(decodeString(fields["admin_role"])),
	}
	if cfg.OrderField == "" {
		cfg.OrderField = ordering.DefaultConfig().OrderField
	}
	return cfg, nil
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func decodeStatusList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return utils.UniqueTrimmed(list)
	}

	s := strings.TrimSpace(decodeString(raw))
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			return utils.UniqueTrimmed(list)
		}
	}
	return utils.UniqueTrimmed(utils.SplitList(s))
}
