package gconf

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// ReadStore is the read side of xswap.KVStore.
type ReadStore interface {
	Get([]byte) []byte
}

// Store is the part of xswap.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte)
}

// Configuration is the singleton state of one extension.
type Configuration interface {
	xswap.Persistent
	Validate() error
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	db.Set(dbKey(pkg), raw)
	return nil
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// when none was saved.
func Load(db ReadStore, pkg string, dst xswap.Persistent) error {
	raw := db.Get(dbKey(pkg))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig reads the genesis section conf.<pkg> into conf and saves it.
// A missing section is ErrNotFound so callers can decide whether the
// extension may run without configuration.
func InitConfig(db Store, opts xswap.Options, pkg string, conf Configuration) error {
	var sections xswap.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return err
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no conf.%s in genesis", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
