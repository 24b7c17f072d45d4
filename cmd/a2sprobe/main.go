package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/steamquery/a2s"
)

// main demonstrates querying a single game server's info, players, and
// rules, and optionally paging a master server for a list of candidates.
func main() {
	addr := flag.String("addr", "", "game server address, host:port")
	master := flag.String("master", "", "master server address, host:port (e.g. hl2master.steampowered.com:27011)")
	timeout := flag.Duration("timeout", 5*time.Second, "per-request timeout")
	goldsrc := flag.Bool("goldsrc", false, "use the GoldSrc split-packet header instead of Source")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "a2sprobe: logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if *master != "" {
		if err := probeMaster(sugar, *master, *timeout); err != nil {
			sugar.Fatalw("master query failed", "error", err)
		}
	}

	if *addr != "" {
		if err := probeServer(sugar, *addr, *timeout, *goldsrc); err != nil {
			sugar.Fatalw("server query failed", "error", err)
		}
	}

	if *master == "" && *addr == "" {
		fmt.Fprintln(os.Stderr, "usage: a2sprobe -addr host:port | -master host:port")
		os.Exit(2)
	}
}

func probeServer(log *zap.SugaredLogger, addr string, timeout time.Duration, goldsrc bool) error {
	variant := a2s.Source
	if goldsrc {
		variant = a2s.GoldSrc
	}

	client, err := a2s.Dial(addr, timeout, variant)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	info, err := client.GetInfo(ctx)
	if err != nil {
		return err
	}
	logInfo(log, info)

	players, err := client.GetPlayers(ctx)
	if err != nil {
		log.Warnw("players unavailable", "error", err)
	} else {
		log.Infow("players", "count", len(players.Players))
		for _, p := range players.Players {
			fmt.Printf("  %-20s score=%d duration=%.0fs\n", p.Name, p.Score, p.Duration)
		}
	}

	rules, err := client.GetRules(ctx)
	if err != nil {
		log.Warnw("rules unavailable", "error", err)
	} else {
		log.Infow("rules", "advisoryCount", rules.AdvisoryCount, "parsed", len(rules.Rules))
		for _, r := range rules.Rules {
			fmt.Printf("  %s = %s\n", r.Key, r.Value)
		}
	}

	return nil
}

func logInfo(log *zap.SugaredLogger, info a2s.Info) {
	if info.IsOld() {
		old := info.Old
		log.Infow("server info (goldsrc)", "name", old.Name, "map", old.Map, "players", old.Players, "maxPlayers", old.MaxPlayers)
		return
	}
	n := info.New
	log.Infow("server info", "name", n.Name, "map", n.Map, "players", n.Players, "maxPlayers", n.MaxPlayers, "version", n.Version)
}

func probeMaster(log *zap.SugaredLogger, addr string, timeout time.Duration) error {
	client, err := a2s.DialMaster(addr, timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pager := a2s.NewPager(client, a2s.RegionAll, a2s.Dedicated())

	total := 0
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			if err == a2s.ErrMasterSequenceDone {
				break
			}
			return err
		}
		total += len(page)
		for _, ep := range page {
			fmt.Println(ep)
		}
	}
	log.Infow("master query complete", "servers", total)
	return nil
}
