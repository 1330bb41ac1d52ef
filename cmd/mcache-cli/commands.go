package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yeqown/mcache"
	"github.com/yeqown/mcache/driver/gomemcache"
	"github.com/yeqown/mcache/driver/memcached"
	"github.com/yeqown/mcache/store"
)

var drivers = map[string]store.Driver{
	"memcached":  memcached.New,
	"gomemcache": gomemcache.New,
}

type globalFlags struct {
	servers string
	driver  string
	timeout time.Duration
	prefix  string
	debug   bool
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.servers, "servers", "s", "127.0.0.1:11211", "comma separated memcached addresses")
	pf.StringVarP(&f.driver, "driver", "d", "memcached", "client driver, one of: memcached, gomemcache")
	pf.DurationVarP(&f.timeout, "timeout", "t", 5*time.Second, "timeout of one operation")
	pf.StringVarP(&f.prefix, "prefix", "p", "", "key prefix")
	pf.BoolVar(&f.debug, "debug", false, "print debug logs")
}

func (f *globalFlags) newAdapter() (*mcache.Adapter, error) {
	names := lo.Keys(drivers)
	if !lo.Contains(names, f.driver) {
		return nil, errors.Errorf("unknown driver %q, choose one of %v", f.driver, names)
	}

	logger := zap.NewNop()
	if f.debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, errors.Wrap(err, "create logger")
		}
		logger = l
	}

	return mcache.New(f.servers,
		mcache.WithDriver(drivers[f.driver]),
		mcache.WithDialTimeout(f.timeout),
		mcache.WithReadTimeout(f.timeout),
		mcache.WithWriteTimeout(f.timeout),
		mcache.WithKeyPrefix(f.prefix),
		mcache.WithLogger(logger),
	), nil
}

func newGetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:          "get [key]",
		Short:        "Get the value of key",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := flags.newAdapter()
			if err != nil {
				return err
			}
			defer adapter.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			value, err := adapter.Get(ctx, args[0]).Wait(ctx)
			if err != nil {
				return err
			}
			if value == nil {
				fmt.Println("(nil)")
				return nil
			}

			fmt.Printf("%s\n", value)
			return nil
		},
	}
}

func newSetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:          "set [key] [value]",
		Short:        "Set key to value",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := flags.newAdapter()
			if err != nil {
				return err
			}
			defer adapter.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			_, err = adapter.Set(ctx, args[0], []byte(args[1])).Wait(ctx)
			if err != nil {
				return err
			}

			fmt.Println("OK")
			return nil
		},
	}
}

func newInvalidateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:          "invalidate",
		Short:        "Invalidate all cached items",
		Long:         "Invalidate flushes every item of the servers, including items written by other clients.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := flags.newAdapter()
			if err != nil {
				return err
			}
			defer adapter.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			if _, err = adapter.Invalidate(ctx).Wait(ctx); err != nil {
				return err
			}

			fmt.Println("OK")
			return nil
		},
	}
}
