package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taskdesk/backend/pkg/utils/keygen"
	"github.com/taskdesk/backend/pkg/utils/sshkeygen"
)

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate server secrets and SFTP keys",
	}
	cmd.AddCommand(newSecretsCmd(), newSSHKeyCmd())
	return cmd
}

func newSecretsCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Print fresh values for the JWT secret, encryption key and database password as env lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 16 {
				return fmt.Errorf("size must be at least 16 bytes, got %d", size)
			}
			jwtSecret, err := keygen.GenerateSecret(size)
			if err != nil {
				return fmt.Errorf("generate jwt secret: %w", err)
			}
			encKey, err := keygen.GenerateSecret(size)
			if err != nil {
				return fmt.Errorf("generate encryption key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "TASKDESK_AUTH_JWT_SECRET=%s\n", jwtSecret)
			fmt.Fprintf(cmd.OutOrStdout(), "TASKDESK_SECURITY_ENCRYPTION_KEY=%s\n", encKey)
			fmt.Fprintf(cmd.OutOrStdout(), "TASKDESK_DATABASE_PASSWORD=%s\n", keygen.GenerateRandomPassword(size))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 32, "random bytes per secret")
	return cmd
}

func newSSHKeyCmd() *cobra.Command {
	var (
		privateKeyPath string
		comment        string
		overwrite      bool
	)

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Generate the Ed25519 key pair used for SFTP report archiving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if privateKeyPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get home directory: %w", err)
				}
				privateKeyPath = filepath.Join(home, ".ssh", "taskdesk_ed25519")
			}
			publicKeyPath := privateKeyPath + ".pub"

			created, err := sshkeygen.GenerateEd25519KeyPair(privateKeyPath, publicKeyPath, comment, overwrite)
			if err != nil {
				return err
			}
			fingerprint, err := sshkeygen.Fingerprint(privateKeyPath)
			if err != nil {
				return err
			}

			state := "generated"
			if !created {
				state = "exists, kept"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "private key: %s (%s)\n", privateKeyPath, state)
			fmt.Fprintf(cmd.OutOrStdout(), "public key:  %s\n", publicKeyPath)
			fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\n", fingerprint)
			return nil
		},
	}

	cmd.Flags().StringVarP(&privateKeyPath, "file", "f", "", "private key path (~/.ssh/taskdesk_ed25519 when empty)")
	cmd.Flags().StringVarP(&comment, "comment", "C", "taskdesk-reports", "key comment")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing key pair")
	return cmd
}
