// Package eqwho provides parsing and monitoring of EverQuest log files for
// /who roster snapshots.
//
// This package allows you to:
//   - Segment log text into roster snapshots (one per /who command)
//   - Monitor a growing log file and capture new snapshots as they appear
//   - Re-render snapshots into the tab-separated roster format consumed by
//     guild-management tools
//
// # Basic Usage
//
// To monitor a log file in real time:
//
//	session, err := eqwho.NewSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	if err := session.SelectFile("eqlog_Accosted_project1999.txt"); err != nil {
//	    log.Fatal(err)
//	}
//
//	snaps, errs, err := session.StartMonitoring(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    select {
//	    case snap, ok := <-snaps:
//	        if !ok {
//	            return
//	        }
//	        fmt.Println(snap.DisplayLabel)
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// To parse captured text directly:
//
//	for snap := range eqwho.ParseText(text) {
//	    fmt.Println(eqwho.ExportRows(snap))
//	}
//
// Snapshots accumulate in the session's store exactly once: duplicates
// (same raw text and timestamp) are suppressed whether they arrive from
// live tailing or a historical rescan.
package eqwho
