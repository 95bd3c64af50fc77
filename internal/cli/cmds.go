package cli

func regCommands() {
	storeCmd.Flags().StringP("type", "t", "store-token", "record type")
	storeCmd.Flags().StringP("key-file", "k", "", "sign the record with this key file")

	getCmd.Flags().StringP("type", "t", "store-token", "record type")

	keygenCmd.Flags().StringP("out", "o", "chainstore.key", "private key output file")

	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(headCmd)
}
