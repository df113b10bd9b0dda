package cmd

// RunRecord stores the compiled keys in the identity ledger. Without
// acceptDrift a changed key is refused.
func RunRecord(configFile string, acceptDrift bool) error {
	e, err := setup(configFile)
	if err != nil {
		return err
	}
	defer e.close()
	defer e.writeMetrics()

	if e.ledger == nil {
		Printer.Printf("Identity ledger is disabled, nothing to record\n")
		return nil
	}

	catalog, err := e.manager.Prepare()
	if err != nil {
		return err
	}
	if err := e.manager.RecordIdentity(catalog, acceptDrift); err != nil {
		return err
	}
	Printer.Printf("Recorded %d identities\n", len(catalog.Entries()))
	return nil
}
