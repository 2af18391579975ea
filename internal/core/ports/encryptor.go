package ports

// Encryptor produces and reverses the encrypted shareable form of an
// aggregator account identifier. Output is URL safe.
type Encryptor interface {
	EncryptID(plaintext string) (string, error)
	DecryptID(ciphertext string) (string, error)
}
